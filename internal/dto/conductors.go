package dto

import "orchestra-platform/internal/models"

// Ref names another entity by id and display name.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Conductor struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Orchestra *Ref   `json:"orchestra"`
}

type CreateConductor struct {
	UserID int    `json:"userId" binding:"required,gt=0"`
	Name   string `json:"name" binding:"required,max=100"`
}

type UpdateConductor struct {
	Name string `json:"name" binding:"required,max=100"`
}

func ToConductor(c *models.Conductor) *Conductor {
	if c == nil {
		return nil
	}
	out := &Conductor{ID: c.ID, UserID: c.UserID, Name: c.Name}
	if c.OrchestraID != nil {
		ref := &Ref{ID: *c.OrchestraID}
		if c.OrchestraName != nil {
			ref.Name = *c.OrchestraName
		}
		out.Orchestra = ref
	}
	return out
}

func ToConductors(in []models.Conductor) []Conductor {
	out := make([]Conductor, 0, len(in))
	for i := range in {
		out = append(out, *ToConductor(&in[i]))
	}
	return out
}

func (in CreateConductor) Record() models.Conductor {
	return models.Conductor{UserID: in.UserID, Name: in.Name}
}

func (in UpdateConductor) Apply(c *models.Conductor) {
	c.Name = in.Name
}
