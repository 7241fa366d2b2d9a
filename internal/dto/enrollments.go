package dto

import (
	"time"

	"orchestra-platform/internal/models"
)

type Enrollment struct {
	PlayerID       int       `json:"playerId"`
	PlayerName     string    `json:"playerName"`
	OrchestraID    int       `json:"orchestraId"`
	OrchestraName  string    `json:"orchestraName"`
	SectionID      int       `json:"sectionId"`
	SectionName    string    `json:"sectionName"`
	InstrumentID   int       `json:"instrumentId"`
	InstrumentName string    `json:"instrumentName"`
	Experience     int       `json:"experience"`
	Status         string    `json:"status"`
	IsApproved     bool      `json:"isApproved"`
	CreatedAt      time.Time `json:"createdAt"`
}

type EnrollRequest struct {
	Experience int `json:"experience" binding:"gte=0,lte=80"`
}

type Activity struct {
	ID        int64     `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToEnrollment(e *models.Enrollment) *Enrollment {
	if e == nil {
		return nil
	}
	return &Enrollment{
		PlayerID:       e.PlayerID,
		PlayerName:     e.PlayerName,
		OrchestraID:    e.OrchestraID,
		OrchestraName:  e.OrchestraName,
		SectionID:      e.SectionID,
		SectionName:    e.SectionName,
		InstrumentID:   e.InstrumentID,
		InstrumentName: e.InstrumentName,
		Experience:     e.Experience,
		Status:         string(e.Status),
		IsApproved:     e.Status == models.EnrollmentApproved,
		CreatedAt:      e.CreatedAt,
	}
}

func ToEnrollments(in []models.Enrollment) []Enrollment {
	out := make([]Enrollment, 0, len(in))
	for i := range in {
		out = append(out, *ToEnrollment(&in[i]))
	}
	return out
}

func ToActivities(in []models.Activity) []Activity {
	out := make([]Activity, 0, len(in))
	for _, a := range in {
		out = append(out, Activity{ID: a.ID, Actor: a.Actor, Action: a.Action, Details: a.Details, CreatedAt: a.CreatedAt})
	}
	return out
}
