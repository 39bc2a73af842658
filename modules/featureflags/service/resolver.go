// Package service resolves feature flags, failing open when a flag record is
// missing and honoring per-job automation overrides.
package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/featureflags/model"
	"github.com/andreypavlenko/jobber/modules/featureflags/ports"
)

// Resolver answers is_enabled(flag, job?) queries.
type Resolver struct {
	repo      ports.FlagRepository
	jobLookup ports.JobAutomationLookup
}

// New creates a Resolver. jobLookup may be nil if callers never pass a jobID.
func New(repo ports.FlagRepository, jobLookup ports.JobAutomationLookup) *Resolver {
	return &Resolver{repo: repo, jobLookup: jobLookup}
}

// IsEnabled resolves (flag, job?) -> bool:
//   - missing flag record -> true (fail-open)
//   - flag.enabled = false -> false
//   - job given, flag is job-scoped, and job.automation_enabled = false -> false
//   - otherwise -> true
func (r *Resolver) IsEnabled(ctx context.Context, flag model.Name, jobID string) bool {
	rec, err := r.repo.Get(ctx, flag)
	if err != nil || rec == nil {
		return true
	}
	if !rec.Enabled {
		return false
	}

	if jobID != "" && model.IsJobScoped(flag) && r.jobLookup != nil {
		automationEnabled, err := r.jobLookup.IsAutomationEnabled(ctx, jobID)
		if err == nil && !automationEnabled {
			return false
		}
	}

	return true
}

// List returns every known flag record (for the admin dashboard).
func (r *Resolver) List(ctx context.Context) ([]*model.FeatureFlagDTO, error) {
	flags, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.FeatureFlagDTO, len(flags))
	for i, f := range flags {
		dtos[i] = f.ToDTO()
	}
	return dtos, nil
}

// Set upserts a flag's enabled state (admin-only operation).
func (r *Resolver) Set(ctx context.Context, name model.Name, enabled bool) error {
	existing, err := r.repo.Get(ctx, name)
	if err != nil || existing == nil {
		existing = &model.FeatureFlag{Name: name}
	}
	existing.Enabled = enabled
	return r.repo.Upsert(ctx, existing)
}
