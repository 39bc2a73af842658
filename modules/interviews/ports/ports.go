package ports

import (
	"context"
	"time"

	"github.com/andreypavlenko/jobber/modules/interviews/model"
)

// Repository persists interviews. Transition methods take an expected
// current status and apply the write only if it still holds, returning
// ErrConflict otherwise.
type Repository interface {
	GetByApplicationID(ctx context.Context, applicationID string) (*model.Interview, error)
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	Create(ctx context.Context, interview *model.Interview) error
	// TransitionStatus moves an interview from expectedStatus to a new one,
	// applying mutate to the row inside the same atomic statement's Go-side
	// staging before the write. Returns ErrConflict if the row isn't in
	// expectedStatus.
	TransitionStatus(ctx context.Context, id string, expectedStatus, newStatus model.Status, mutate func(*model.Interview)) (*model.Interview, error)
	// ListExpiredInvitations returns invitation_sent interviews whose
	// confirmation_deadline has passed, ordered by id asc.
	ListExpiredInvitations(ctx context.Context, now time.Time) ([]*model.Interview, error)
	// ListExpiredSlotSelections returns slot_pending interviews whose
	// slot_selection_deadline has passed, ordered by id asc.
	ListExpiredSlotSelections(ctx context.Context, now time.Time) ([]*model.Interview, error)
	// ListDueForReminder returns confirmed interviews with scheduled_time in
	// [windowStart, windowEnd], ordered by id asc.
	ListDueForReminder(ctx context.Context, windowStart, windowEnd time.Time) ([]*model.Interview, error)
	// ListActiveForRiskRefresh returns confirmed, future interviews.
	ListActiveForRiskRefresh(ctx context.Context, now time.Time) ([]*model.Interview, error)
	SetCalendarEventRef(ctx context.Context, id string, ref string) error
	SetNoShowRisk(ctx context.Context, id string, risk float64) error
	// CountConfirmedWithin counts confirmed interviews for a job scheduled in
	// [now, horizon], for shortlisting's imminent-interview promotion guard.
	CountConfirmedWithin(ctx context.Context, jobID string, now, horizon time.Time) (int, error)
}

var ErrConflict = errConflict{}

type errConflict struct{}

func (errConflict) Error() string { return "interview not in expected state" }

// ApplicationLookup resolves what the interview needs from an application
// without importing modules/applications.
type ApplicationLookup interface {
	GetInterviewContext(ctx context.Context, applicationID string) (jobID, candidateID string, rankAtTime int, err error)
	MarkRejected(ctx context.Context, applicationID string) error
}

// ShortlistingCallback is the one-way call into modules/shortlisting.
type ShortlistingCallback interface {
	PromoteFromBuffer(ctx context.Context, jobID string, vacatedRank int) error
}

// FlagResolver mirrors shortlisting's, kept separate to avoid a shared
// dependency edge between the two modules.
type FlagResolver interface {
	IsEnabled(ctx context.Context, flag string, jobID string) bool
}

type ActivityLogger interface {
	Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{})
}

// EmailSender queues templated candidate/recruiter emails.
type EmailSender interface {
	SendInvitation(ctx context.Context, interview *model.Interview, acceptToken, rejectToken string) error
	SendSlotSelection(ctx context.Context, interview *model.Interview) error
	SendConfirmation(ctx context.Context, interview *model.Interview) error
	SendReminder(ctx context.Context, interview *model.Interview) error
	// SendNegotiationEscalation notifies the recruiter that a negotiation
	// ran out of rounds without finding a matching slot.
	SendNegotiationEscalation(ctx context.Context, interview *model.Interview) error
}

// CalendarProvider creates events and reports free/busy windows.
type CalendarProvider interface {
	CreateEvent(ctx context.Context, interview *model.Interview) (eventRef string, err error)
	FreeSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error)
}

// RiskScorer estimates no-show probability.
type RiskScorer interface {
	Score(ctx context.Context, interview *model.Interview) (float64, error)
}

// TokenIssuer/TokenValidator narrow internal/platform/tokens to what this
// module needs (kept as an interface so tests don't need real JWT signing).
type TokenIssuer interface {
	Generate(interviewID string, action string) (string, error)
	Validate(interviewID, token, expectedAction string) error
}
