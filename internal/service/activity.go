package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/repository"
)

const activityPageSize = 200

type Activity struct {
	repo *repository.Activity
	log  logrus.FieldLogger
}

// Record appends to the audit trail. A failed write is logged and otherwise ignored.
func (a *Activity) Record(ctx context.Context, actorID *int, action, details string) {
	if err := a.repo.Record(ctx, actorID, action, details); err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{"action": action, "details": details}).Warn("activity not recorded")
	}
}

func (a *Activity) List(ctx context.Context) ([]dto.Activity, error) {
	rows, err := a.repo.List(ctx, activityPageSize)
	if err != nil {
		return nil, apperr.Unexpected("list activity", err)
	}
	return dto.ToActivities(rows), nil
}
