// Package service holds the business rules of each entity: id validation,
// cross-entity existence checks, password hashing and record/DTO mapping.
// Every error it returns is an *apperr.Error.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/repository"
)

// ValidID reports whether id can name a row.
func ValidID(id int) bool {
	return id > 0
}

func invalidID(label string, id int) error {
	return apperr.Invalid("%s id %d is not a positive integer", label, id)
}

func missing(label string, id int) error {
	return apperr.NotFound("%s with id %d does not exist", label, id)
}

func missingName(label, name string) error {
	return apperr.NotFound("%s with name %s does not exist", label, name)
}

// wrap classifies a repository failure that is not a missing row.
func wrap(label, op string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperr.Conflict("%s already exists", label)
	}
	return apperr.Unexpected(op+" "+strings.ToLower(label), err)
}

// lookupErr classifies the error of a single-row read.
func lookupErr(err error, label string, id int) error {
	if errors.Is(err, repository.ErrNotFound) {
		return missing(label, id)
	}
	return wrap(label, "get", err)
}

type Services struct {
	Users       *Users
	Players     *Players
	Conductors  *Conductors
	Orchestras  *Orchestras
	Concerts    *Concerts
	Sections    *Lookups
	Instruments *Lookups
	Enrollments *Enrollments
	Activity    *Activity
	Tokens      *Tokens
}

func New(store *repository.Store, hasher Hasher, tokens *Tokens, log logrus.FieldLogger) *Services {
	activity := &Activity{repo: store.Activity, log: log}
	return &Services{
		Users:       &Users{store: store, hasher: hasher, activity: activity},
		Players:     &Players{store: store},
		Conductors:  &Conductors{store: store},
		Orchestras:  &Orchestras{store: store},
		Concerts:    &Concerts{store: store},
		Sections:    &Lookups{repo: store.Sections, label: sectionLabel},
		Instruments: &Lookups{repo: store.Instruments, label: instrumentLabel},
		Enrollments: &Enrollments{store: store, activity: activity, now: time.Now},
		Activity:    activity,
		Tokens:      tokens,
	}
}
