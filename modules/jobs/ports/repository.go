package ports

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/jobs/model"
)

// JobRepository defines the interface for job data access
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, userID, jobID string) (*model.Job, error)
	// GetByIDUnscoped looks a job up by id alone, for internal orchestrator
	// callbacks that don't run on behalf of a single recruiter.
	GetByIDUnscoped(ctx context.Context, jobID string) (*model.Job, error)
	ListActiveForCycle(ctx context.Context) ([]*model.Job, error)
	List(ctx context.Context, userID string, limit, offset int, status, sortBy, sortOrder string) ([]*model.JobDTO, int, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, userID, jobID string) error
}

// ShortlistTrigger is the narrow one-way callback into modules/shortlisting
//: the jobs service invokes it when applications_closed flips
// from false to true, without importing modules/shortlisting directly.
type ShortlistTrigger interface {
	TriggerAutoShortlist(ctx context.Context, jobID string) error
}
