package dto

import "orchestra-platform/internal/models"

type Player struct {
	ID             int      `json:"id"`
	UserID         int      `json:"userId"`
	Name           string   `json:"name"`
	SectionID      *int     `json:"sectionId"`
	SectionName    *string  `json:"sectionName"`
	InstrumentID   *int     `json:"instrumentId"`
	InstrumentName *string  `json:"instrumentName"`
	ConcertID      *int     `json:"concertId"`
	ConcertName    *string  `json:"concertName"`
	Score          int      `json:"score"`
	Orchestras     []string `json:"orchestras"`
}

type CreatePlayer struct {
	UserID int    `json:"userId" binding:"required,gt=0"`
	Name   string `json:"name" binding:"required,max=100"`
}

type UpdatePlayer struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateScore struct {
	Score *int `json:"score" binding:"required,gte=0"`
}

// LeaderboardEntry is a player's place within a section, computed per request.
type LeaderboardEntry struct {
	Place          int     `json:"place"`
	PlayerID       int     `json:"playerId"`
	Name           string  `json:"name"`
	InstrumentName *string `json:"instrumentName"`
	Score          int     `json:"score"`
}

func ToPlayer(p *models.Player) *Player {
	if p == nil {
		return nil
	}
	orchestras := p.Orchestras
	if orchestras == nil {
		orchestras = []string{}
	}
	return &Player{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		SectionID:      p.SectionID,
		SectionName:    p.SectionName,
		InstrumentID:   p.InstrumentID,
		InstrumentName: p.InstrumentName,
		ConcertID:      p.ConcertID,
		ConcertName:    p.ConcertName,
		Score:          p.Score,
		Orchestras:     orchestras,
	}
}

func ToPlayers(in []models.Player) []Player {
	out := make([]Player, 0, len(in))
	for i := range in {
		out = append(out, *ToPlayer(&in[i]))
	}
	return out
}

// ToLeaderboard numbers players in the order given; the repository sorts by score.
func ToLeaderboard(in []models.Player) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(in))
	for i, p := range in {
		out = append(out, LeaderboardEntry{
			Place:          i + 1,
			PlayerID:       p.ID,
			Name:           p.Name,
			InstrumentName: p.InstrumentName,
			Score:          p.Score,
		})
	}
	return out
}

func (in CreatePlayer) Record() models.Player {
	return models.Player{UserID: in.UserID, Name: in.Name}
}

func (in UpdatePlayer) Apply(p *models.Player) {
	p.Name = in.Name
}
