package dto

import (
	"time"

	"orchestra-platform/internal/models"
)

type Concert struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PerformanceDate time.Time `json:"performanceDate"`
	Image           string    `json:"image"`
	OrchestraID     *int      `json:"orchestraId"`
	OrchestraName   *string   `json:"orchestraName"`
}

type SaveConcert struct {
	Name            string    `json:"name" binding:"required,max=200"`
	Description     string    `json:"description" binding:"max=2000"`
	PerformanceDate time.Time `json:"performanceDate" binding:"required"`
	Image           string    `json:"image"`
	OrchestraID     *int      `json:"orchestraId" binding:"omitempty,gt=0"`
}

func ToConcert(c *models.Concert) *Concert {
	if c == nil {
		return nil
	}
	return &Concert{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		PerformanceDate: c.PerformanceDate,
		Image:           c.Image,
		OrchestraID:     c.OrchestraID,
		OrchestraName:   c.OrchestraName,
	}
}

func ToConcerts(in []models.Concert) []Concert {
	out := make([]Concert, 0, len(in))
	for i := range in {
		out = append(out, *ToConcert(&in[i]))
	}
	return out
}

func (in SaveConcert) Record() models.Concert {
	var c models.Concert
	in.Apply(&c)
	return c
}

func (in SaveConcert) Apply(c *models.Concert) {
	c.Name = in.Name
	c.Description = in.Description
	c.PerformanceDate = in.PerformanceDate
	c.Image = in.Image
	c.OrchestraID = in.OrchestraID
}
