package dto

import "orchestra-platform/internal/models"

// Lookup is the wire shape of a section or an instrument.
type Lookup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SaveLookup struct {
	Name string `json:"name" binding:"required,max=100"`
}

func ToLookup(l *models.Lookup) *Lookup {
	if l == nil {
		return nil
	}
	return &Lookup{ID: l.ID, Name: l.Name}
}

func ToLookups(in []models.Lookup) []Lookup {
	out := make([]Lookup, 0, len(in))
	for i := range in {
		out = append(out, *ToLookup(&in[i]))
	}
	return out
}
