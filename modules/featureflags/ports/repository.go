package ports

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/featureflags/model"
)

// FlagRepository persists global feature flag records.
type FlagRepository interface {
	Get(ctx context.Context, name model.Name) (*model.FeatureFlag, error)
	List(ctx context.Context) ([]*model.FeatureFlag, error)
	Upsert(ctx context.Context, flag *model.FeatureFlag) error
}

// JobAutomationLookup is the narrow, one-way dependency the resolver uses to
// read a job's automation_enabled override without importing the jobs module.
type JobAutomationLookup interface {
	IsAutomationEnabled(ctx context.Context, jobID string) (bool, error)
}
