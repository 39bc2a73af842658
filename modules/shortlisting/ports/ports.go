package ports

import (
	"context"
	"time"

	"github.com/andreypavlenko/jobber/modules/shortlisting/model"
)

// ApplicationStore is the slice of the applications table the shortlisting
// engine touches: ranking and shortlist_status, nothing else.
type ApplicationStore interface {
	// ListPendingProcessed returns applications with ai_processed=true and
	// shortlist_status=pending for a job, ordered by fit_score desc, id asc.
	ListPendingProcessed(ctx context.Context, jobID string) ([]model.CandidateRef, error)
	// ListByStatus returns applications in a given shortlist_status for a job,
	// ordered by rank asc.
	ListByStatus(ctx context.Context, jobID, status string) ([]model.CandidateRef, error)
	CountByStatus(ctx context.Context, jobID, status string) (int, error)
	// AssignRank sets shortlist_status and rank for an application, skipping
	// rows with manual_override=true. Returns false if skipped.
	AssignRank(ctx context.Context, appID, status string, rank int) (bool, error)
	// PromoteSmallestBufferRank atomically selects the lowest-ranked buffer
	// application for a job, re-ranks it to vacatedRank and to status
	// shortlisted, inside a per-job critical section. Returns nil if no
	// buffer candidate exists.
	PromoteSmallestBufferRank(ctx context.Context, jobID string, vacatedRank int) (*model.CandidateRef, error)
}

// JobLookup resolves the sizing parameters the engine needs without
// importing modules/jobs.
type JobLookup interface {
	GetOpeningsAndBufferTarget(ctx context.Context, jobID string) (openings, bufferTarget int, err error)
}

// InvitationSender is the one-way callback into modules/interviews so this
// package never imports it.
type InvitationSender interface {
	InviteCandidate(ctx context.Context, jobID, applicationID string, rankAtTime int) error
}

// InterviewLookup answers the conservative can_promote guard without
// importing modules/interviews.
type InterviewLookup interface {
	HasConfirmedInterviewWithin(ctx context.Context, jobID string, window time.Duration) (bool, error)
}

// FlagResolver answers is_enabled(flag, job) without importing featureflags'
// service package directly — keeps the dependency direction flag->job only.
type FlagResolver interface {
	IsEnabled(ctx context.Context, flag string, jobID string) bool
}

// ActivityLogger is the one-way callback into automationlog.
type ActivityLogger interface {
	Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{})
}
