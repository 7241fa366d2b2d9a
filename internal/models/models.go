package models

import "time"

const (
	RolePlayer    = 1
	RoleConductor = 2
)

type User struct {
	ID        int       `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hash
	Role      int       `db:"role"`
	Image     *string   `db:"image"`
	CreatedAt time.Time `db:"created_at"`
}

// Player carries the names of its section, instrument and concert and the
// orchestras it was approved into; those come from joins, not from the players row.
type Player struct {
	ID           int    `db:"id"`
	UserID       int    `db:"user_id"`
	Name         string `db:"name"`
	SectionID    *int   `db:"section_id"`
	InstrumentID *int   `db:"instrument_id"`
	ConcertID    *int   `db:"concert_id"`
	Score        int    `db:"score"`

	SectionName    *string  `db:"section_name"`
	InstrumentName *string  `db:"instrument_name"`
	ConcertName    *string  `db:"concert_name"`
	Orchestras     []string `db:"-"`
}

type Conductor struct {
	ID     int    `db:"id"`
	UserID int    `db:"user_id"`
	Name   string `db:"name"`

	OrchestraID   *int    `db:"orchestra_id"`
	OrchestraName *string `db:"orchestra_name"`
}

type Orchestra struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Image       string    `db:"image"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	ConductorID int       `db:"conductor_id"`

	ConductorName string `db:"conductor_name"`
}

type Concert struct {
	ID              int       `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	PerformanceDate time.Time `db:"performance_date"`
	Image           string    `db:"image"`
	OrchestraID     *int      `db:"orchestra_id"`

	OrchestraName *string `db:"orchestra_name"`
}

// Lookup is a row of a static reference table (sections, instruments).
type Lookup struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type EnrollmentStatus string

const (
	EnrollmentRequested EnrollmentStatus = "requested"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
)

// CanBecome reports whether the status may move to next. Only requested enrollments move.
func (s EnrollmentStatus) CanBecome(next EnrollmentStatus) bool {
	return s == EnrollmentRequested && (next == EnrollmentApproved || next == EnrollmentRejected)
}

type Enrollment struct {
	PlayerID     int              `db:"player_id"`
	OrchestraID  int              `db:"orchestra_id"`
	SectionID    int              `db:"section_id"`
	InstrumentID int              `db:"instrument_id"`
	Experience   int              `db:"experience"`
	Status       EnrollmentStatus `db:"status"`
	CreatedAt    time.Time        `db:"created_at"`

	PlayerName     string `db:"player_name"`
	OrchestraName  string `db:"orchestra_name"`
	SectionName    string `db:"section_name"`
	InstrumentName string `db:"instrument_name"`
}

type Activity struct {
	ID        int64     `db:"id"`
	ActorID   *int      `db:"actor_id"`
	Actor     string    `db:"actor"`
	Action    string    `db:"action"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}
