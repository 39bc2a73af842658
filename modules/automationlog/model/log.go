package model

import "time"

// TriggerSource says what set an action in motion.
type TriggerSource string

const (
	TriggerAuto      TriggerSource = "auto"
	TriggerManual    TriggerSource = "manual"
	TriggerScheduled TriggerSource = "scheduled"
)

// ActionType enumerates the events the orchestrator appends to the log.
// Handlers and engines should only ever emit one of these — it keeps
// dashboard aggregation (by action_type) meaningful.
type ActionType string

const (
	ActionShortlisted          ActionType = "applications_shortlisted"
	ActionBufferFilled         ActionType = "buffer_filled"
	ActionBufferPromotion      ActionType = "buffer_promotion"
	ActionInvitationSent       ActionType = "invitation_sent"
	ActionInvitationAccepted   ActionType = "invitation_accepted"
	ActionInvitationRejected   ActionType = "invitation_rejected"
	ActionInvitationExpired    ActionType = "invitation_expired"
	ActionSlotSelected         ActionType = "slot_selected"
	ActionSlotSelectionExpired ActionType = "slot_selection_expired"
	ActionSlotConfirmed        ActionType = "slot_confirmed"
	ActionInterviewCancelled   ActionType = "interview_cancelled"
	ActionInterviewCompleted   ActionType = "interview_completed"
	ActionInterviewNoShow      ActionType = "interview_no_show"
	ActionReminderSent         ActionType = "interview_reminder_sent"
	ActionRiskScoreUpdated     ActionType = "risk_score_updated"
	ActionNegotiationMessage   ActionType = "negotiation_message"
	ActionNegotiationEscalated ActionType = "negotiation_escalated"
	ActionBackgroundCycle      ActionType = "background_cycle"
	ActionAdminAlert           ActionType = "admin_alert"
)

// AutomationLog is an immutable append-only event. It references entities by
// id but owns none of them.
type AutomationLog struct {
	ID            string
	JobID         *string
	ActionType    ActionType
	TriggerSource TriggerSource
	Actor         *string
	Details       map[string]interface{}
	CreatedAt     time.Time
}

// AutomationLogDTO is the API representation of an AutomationLog.
type AutomationLogDTO struct {
	ID            string                 `json:"id"`
	JobID         *string                `json:"job_id,omitempty"`
	ActionType    ActionType             `json:"action_type"`
	TriggerSource TriggerSource          `json:"trigger_source"`
	Actor         *string                `json:"actor,omitempty"`
	Details       map[string]interface{} `json:"details"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (l *AutomationLog) ToDTO() *AutomationLogDTO {
	return &AutomationLogDTO{
		ID:            l.ID,
		JobID:         l.JobID,
		ActionType:    l.ActionType,
		TriggerSource: l.TriggerSource,
		Actor:         l.Actor,
		Details:       l.Details,
		CreatedAt:     l.CreatedAt,
	}
}

// ActionTypeCount is one row of an aggregate-by-action-type query.
type ActionTypeCount struct {
	ActionType ActionType `json:"action_type"`
	Count      int        `json:"count"`
}

// TriggerSourceCount is one row of an aggregate-by-trigger-source query.
type TriggerSourceCount struct {
	TriggerSource TriggerSource `json:"trigger_source"`
	Count         int           `json:"count"`
}

// QueryFilter narrows a paged log query.
type QueryFilter struct {
	JobID         string
	ActionType    ActionType
	InterviewID   string
	CandidateID   string
	StartTime     *time.Time
	EndTime       *time.Time
	Limit         int
	Offset        int
}
