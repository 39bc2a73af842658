package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/jobs/ports"
)

// LookupAdapter exposes a job's orchestrator fields to other modules through
// their own narrow ports interfaces, so
// modules/shortlisting and modules/featureflags never import modules/jobs
// directly. It wraps the repository rather than JobService because both
// calls it serves are unscoped lookups that don't belong on the
// recruiter-facing service surface.
type LookupAdapter struct {
	repo ports.JobRepository
}

// NewLookupAdapter builds the adapter. The same instance satisfies both
// featureflags/ports.JobAutomationLookup and shortlisting/ports.JobLookup.
func NewLookupAdapter(repo ports.JobRepository) *LookupAdapter {
	return &LookupAdapter{repo: repo}
}

// IsAutomationEnabled implements featureflags/ports.JobAutomationLookup.
func (a *LookupAdapter) IsAutomationEnabled(ctx context.Context, jobID string) (bool, error) {
	job, err := a.repo.GetByIDUnscoped(ctx, jobID)
	if err != nil {
		return false, err
	}
	return job.AutomationEnabled, nil
}

// GetOpeningsAndBufferTarget implements shortlisting/ports.JobLookup.
func (a *LookupAdapter) GetOpeningsAndBufferTarget(ctx context.Context, jobID string) (openings, bufferTarget int, err error) {
	job, err := a.repo.GetByIDUnscoped(ctx, jobID)
	if err != nil {
		return 0, 0, err
	}
	return job.Openings, job.BufferTarget, nil
}
