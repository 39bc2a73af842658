// Package model holds the Interview aggregate and its state machine.
package model

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("interview not found")

type Status string

const (
	StatusInvitationSent Status = "invitation_sent"
	StatusSlotPending    Status = "slot_pending"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusExpired        Status = "expired"
	StatusNoShow         Status = "no_show"
)

// Interview is the aggregate driving the interview scheduler's state
// machine. At most one exists per application (send_invitation is
// idempotent on application id).
type Interview struct {
	ID                    string
	ApplicationID         string
	JobID                 string
	RecruiterID           string
	CandidateID           string
	RankAtTime            int
	Status                Status
	ConfirmationDeadline  *time.Time
	SlotSelectionDeadline *time.Time
	ScheduledTime         *time.Time
	NoShowRisk            float64
	CalendarEventRef      *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type InterviewDTO struct {
	ID                    string     `json:"id"`
	ApplicationID         string     `json:"application_id"`
	JobID                 string     `json:"job_id"`
	CandidateID           string     `json:"candidate_id"`
	RankAtTime            int        `json:"rank_at_time"`
	Status                Status     `json:"status"`
	ConfirmationDeadline  *time.Time `json:"confirmation_deadline,omitempty"`
	SlotSelectionDeadline *time.Time `json:"slot_selection_deadline,omitempty"`
	ScheduledTime         *time.Time `json:"scheduled_time,omitempty"`
	NoShowRisk            float64    `json:"no_show_risk"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (i *Interview) ToDTO() *InterviewDTO {
	return &InterviewDTO{
		ID:                    i.ID,
		ApplicationID:         i.ApplicationID,
		JobID:                 i.JobID,
		CandidateID:           i.CandidateID,
		RankAtTime:            i.RankAtTime,
		Status:                i.Status,
		ConfirmationDeadline:  i.ConfirmationDeadline,
		SlotSelectionDeadline: i.SlotSelectionDeadline,
		ScheduledTime:         i.ScheduledTime,
		NoShowRisk:            i.NoShowRisk,
		CreatedAt:             i.CreatedAt,
		UpdatedAt:             i.UpdatedAt,
	}
}

// OperationResult carries the ok/reason shape used for gated operations
// (e.g. send_invitation when automation is disabled).
type OperationResult struct {
	OK     bool
	Reason string
}

// Slot is a candidate interview window, half-open [Start, End).
type Slot struct {
	Start time.Time
	End   time.Time
}

type AttendanceStatus string

const (
	AttendanceCompleted AttendanceStatus = "completed"
	AttendanceNoShow    AttendanceStatus = "no_show"
)
