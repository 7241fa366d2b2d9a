package dto

import (
	"time"

	"orchestra-platform/internal/models"
)

type Orchestra struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	ConductorID   int       `json:"conductorId"`
	ConductorName string    `json:"conductorName"`
}

// SaveOrchestra is the body of both create and update.
type SaveOrchestra struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Image       string    `json:"image"`
	Description string    `json:"description" binding:"max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	ConductorID int       `json:"conductorId" binding:"required,gt=0"`
}

func ToOrchestra(o *models.Orchestra) *Orchestra {
	if o == nil {
		return nil
	}
	return &Orchestra{
		ID:            o.ID,
		Name:          o.Name,
		Image:         o.Image,
		Description:   o.Description,
		Date:          o.Date,
		ConductorID:   o.ConductorID,
		ConductorName: o.ConductorName,
	}
}

func ToOrchestras(in []models.Orchestra) []Orchestra {
	out := make([]Orchestra, 0, len(in))
	for i := range in {
		out = append(out, *ToOrchestra(&in[i]))
	}
	return out
}

func (in SaveOrchestra) Record() models.Orchestra {
	var o models.Orchestra
	in.Apply(&o)
	return o
}

func (in SaveOrchestra) Apply(o *models.Orchestra) {
	o.Name = in.Name
	o.Image = in.Image
	o.Description = in.Description
	o.Date = in.Date
	o.ConductorID = in.ConductorID
}
