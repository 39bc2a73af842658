package ports

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/negotiation/model"
)

// Repository persists negotiation sessions.
type Repository interface {
	GetByInterviewID(ctx context.Context, interviewID string) (*model.NegotiationSession, error)
	Create(ctx context.Context, session *model.NegotiationSession) error
	Update(ctx context.Context, session *model.NegotiationSession) error
}

// AvailabilityParser turns free text (or a structured payload) into
// Availability. Implementations: LLM-backed (primary, when
// gemini_parsing is enabled) and rule-based (fallback).
type AvailabilityParser interface {
	Parse(ctx context.Context, freeText string) (*model.Availability, error)
}

// ResponseGenerator drafts the candidate-facing message when no slots
// match. Implementations: LLM-backed (when gemini_responses is enabled)
// and a fixed template.
type ResponseGenerator interface {
	GenerateNoMatchResponse(ctx context.Context, availability *model.Availability) (string, error)
}

// FlagResolver mirrors the other engines' narrow flag-check interface.
type FlagResolver interface {
	IsEnabled(ctx context.Context, flag string, jobID string) bool
}

type ActivityLogger interface {
	Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{})
}

// RecruiterNotifier alerts a recruiter that a negotiation escalated.
type RecruiterNotifier interface {
	NotifyEscalation(ctx context.Context, interviewID string) error
}
