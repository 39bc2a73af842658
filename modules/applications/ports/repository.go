package ports

import (
	"context"
	"time"

	"github.com/andreypavlenko/jobber/modules/applications/model"
)

// ListOptions represents options for listing applications
type ListOptions struct {
	Limit   int
	Offset  int
	SortBy  string // "last_activity", "status", "applied_at"; any other value sorts by applied_at
	SortDir string // "asc", "desc"
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, userID, appID string) (*model.Application, error)
	// GetByIDUnscoped looks up an application by id alone, for orchestrator
	// callbacks (modules/interviews' ApplicationLookup) that don't run on
	// behalf of a single recruiter.
	GetByIDUnscoped(ctx context.Context, appID string) (*model.Application, error)
	List(ctx context.Context, userID string, opts *ListOptions) ([]*model.Application, int, error)
	Update(ctx context.Context, app *model.Application) error
	// UpdateStatusUnscoped sets status for an application without a user
	// scope, for the same orchestrator callbacks.
	UpdateStatusUnscoped(ctx context.Context, appID, status string) error
	// UpdateShortlistStatusUnscoped sets shortlist_status for an application
	// without a user scope, for orchestrator callbacks that need to pull an
	// application out of the shortlist/buffer pipeline (e.g. on interview
	// rejection, expiry, or no-show).
	UpdateShortlistStatusUnscoped(ctx context.Context, appID, shortlistStatus string) error
	// UpdateScoreUnscoped records a resume-scoring outcome without a user
	// scope, for the post-submission async scoring callback.
	UpdateScoreUnscoped(ctx context.Context, appID string, fitScore float64) error
	Delete(ctx context.Context, userID, appID string) error
	GetLastActivityAt(ctx context.Context, appID string) (time.Time, error)
}

type StageTemplateRepository interface {
	Create(ctx context.Context, template *model.StageTemplate) error
	GetByID(ctx context.Context, userID, templateID string) (*model.StageTemplate, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*model.StageTemplate, int, error)
	Update(ctx context.Context, template *model.StageTemplate) error
	Delete(ctx context.Context, userID, templateID string) error
}

type ApplicationStageRepository interface {
	Create(ctx context.Context, stage *model.ApplicationStage) error
	GetByID(ctx context.Context, stageID string) (*model.ApplicationStage, error)
	ListByApplication(ctx context.Context, appID string) ([]*model.ApplicationStage, error)
	Update(ctx context.Context, stage *model.ApplicationStage) error
	Delete(ctx context.Context, stageID string) error
}

// ScoringResult is the outcome of scoring one application's resume against a
// job description.
type ScoringResult struct {
	FitScore float64
	Summary  string
}

// ScoringClient scores a resume against a job description (internal/platform/
// scoring.Client), kept behind a narrow interface so this module doesn't
// import the HTTP collaborator directly.
type ScoringClient interface {
	ProcessResume(ctx context.Context, applicationID, resumeURL, jobDescription string) (*ScoringResult, error)
}
