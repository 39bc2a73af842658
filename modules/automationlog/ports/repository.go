package ports

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/automationlog/model"
)

// Repository is the append-only storage surface for automation events.
type Repository interface {
	Append(ctx context.Context, log *model.AutomationLog) error
	Query(ctx context.Context, filter model.QueryFilter) ([]*model.AutomationLog, error)
	CountByActionType(ctx context.Context, jobID string) ([]model.ActionTypeCount, error)
	CountByTriggerSource(ctx context.Context, jobID string) ([]model.TriggerSourceCount, error)
}
