// Package service implements the interview scheduler: the
// invitation_sent -> slot_pending -> confirmed -> {completed, cancelled,
// expired, no_show} state machine and its token-gated candidate actions.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"github.com/andreypavlenko/jobber/modules/interviews/ports"
)

const (
	flagGlobalAutomation = "global_automation"

	actionInvitationSent       = "invitation_sent"
	actionInvitationAccepted   = "invitation_accepted"
	actionInvitationRejected   = "invitation_rejected"
	actionInvitationExpired    = "invitation_expired"
	actionSlotSelected         = "slot_selected"
	actionSlotSelectionExpired = "slot_selection_expired"
	actionSlotConfirmed        = "slot_confirmed"
	actionInterviewCancelled   = "interview_cancelled"
	actionInterviewCompleted   = "interview_completed"
	actionInterviewNoShow      = "interview_no_show"

	triggerAuto      = "auto"
	triggerManual    = "manual"
	triggerScheduled = "scheduled"

	tokenActionAccept = "accept"
	tokenActionReject = "reject"
)

var (
	ErrInvalidState   = errors.New("interview not in the required state")
	ErrInvalidToken   = errors.New("link invalid or expired")
	ErrSlotOutOfHours = errors.New("slot outside business hours or overlaps a busy slot")
)

type Engine struct {
	repo         ports.Repository
	applications ports.ApplicationLookup
	shortlisting ports.ShortlistingCallback
	flags        ports.FlagResolver
	activity     ports.ActivityLogger
	email        ports.EmailSender
	calendar     ports.CalendarProvider
	risk         ports.RiskScorer
	tokens       ports.TokenIssuer

	confirmationDeadline  time.Duration
	slotSelectionDeadline time.Duration
	businessStartHour     int
	businessEndHour       int
}

type Config struct {
	ConfirmationDeadline  time.Duration
	SlotSelectionDeadline time.Duration
	BusinessStartHour     int
	BusinessEndHour       int
}

func New(repo ports.Repository, applications ports.ApplicationLookup, shortlisting ports.ShortlistingCallback,
	flags ports.FlagResolver, activity ports.ActivityLogger, email ports.EmailSender,
	calendar ports.CalendarProvider, risk ports.RiskScorer, tokenIssuer ports.TokenIssuer, cfg Config) *Engine {
	return &Engine{
		repo: repo, applications: applications, shortlisting: shortlisting, flags: flags, activity: activity,
		email: email, calendar: calendar, risk: risk, tokens: tokenIssuer,
		confirmationDeadline: cfg.ConfirmationDeadline, slotSelectionDeadline: cfg.SlotSelectionDeadline,
		businessStartHour: cfg.BusinessStartHour, businessEndHour: cfg.BusinessEndHour,
	}
}

// SendInvitation is idempotent on application id. Gated on
// global_automation for the job.
func (e *Engine) SendInvitation(ctx context.Context, applicationID string) (*model.Interview, *model.OperationResult, error) {
	existing, err := e.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return existing, &model.OperationResult{OK: true}, nil
	}

	jobID, candidateID, rankAtTime, err := e.applications.GetInterviewContext(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}

	if !e.flags.IsEnabled(ctx, flagGlobalAutomation, jobID) {
		return nil, &model.OperationResult{OK: false, Reason: "automation_disabled"}, nil
	}

	now := time.Now().UTC()
	deadline := now.Add(e.confirmationDeadline)
	interview := &model.Interview{
		ApplicationID:        applicationID,
		JobID:                jobID,
		CandidateID:          candidateID,
		RankAtTime:           rankAtTime,
		Status:               model.StatusInvitationSent,
		ConfirmationDeadline: &deadline,
		NoShowRisk:           0.5,
	}
	if err := e.repo.Create(ctx, interview); err != nil {
		return nil, nil, err
	}

	acceptToken, err := e.tokens.Generate(interview.ID, tokenActionAccept)
	if err != nil {
		return nil, nil, err
	}
	rejectToken, err := e.tokens.Generate(interview.ID, tokenActionReject)
	if err != nil {
		return nil, nil, err
	}
	if err := e.email.SendInvitation(ctx, interview, acceptToken, rejectToken); err != nil {
		// email delivery is best-effort; invitation already exists
	}

	e.activity.Append(ctx, &jobID, actionInvitationSent, triggerAuto, nil, map[string]interface{}{
		"interview_id": interview.ID, "application_id": applicationID,
	})

	return interview, &model.OperationResult{OK: true}, nil
}

// HasConfirmedInterviewWithin adapts the repository to
// shortlisting/ports.InterviewLookup.
func (e *Engine) HasConfirmedInterviewWithin(ctx context.Context, jobID string, window time.Duration) (bool, error) {
	now := time.Now().UTC()
	count, err := e.repo.CountConfirmedWithin(ctx, jobID, now, now.Add(window))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InviteCandidate adapts SendInvitation to shortlisting/ports.InvitationSender
//: shortlisting calls this when it promotes or shortlists a
// candidate, without importing this package. jobID and rankAtTime are
// re-derived from the application by GetInterviewContext, so they're only
// used here to satisfy the interface signature.
func (e *Engine) InviteCandidate(ctx context.Context, jobID, applicationID string, rankAtTime int) error {
	_, _, err := e.SendInvitation(ctx, applicationID)
	return err
}

func (e *Engine) HandleAccept(ctx context.Context, interviewID, token string) (*model.Interview, error) {
	if err := e.tokens.Validate(interviewID, token, tokenActionAccept); err != nil {
		return nil, ErrInvalidToken
	}

	deadline := time.Now().UTC().Add(e.slotSelectionDeadline)
	interview, err := e.repo.TransitionStatus(ctx, interviewID, model.StatusInvitationSent, model.StatusSlotPending, func(iv *model.Interview) {
		iv.SlotSelectionDeadline = &deadline
	})
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	if err := e.email.SendSlotSelection(ctx, interview); err != nil {
		// best-effort
	}
	e.activity.Append(ctx, &interview.JobID, actionInvitationAccepted, triggerManual, nil, map[string]interface{}{"interview_id": interview.ID})
	return interview, nil
}

func (e *Engine) HandleReject(ctx context.Context, interviewID, token string) (*model.Interview, error) {
	if err := e.tokens.Validate(interviewID, token, tokenActionReject); err != nil {
		return nil, ErrInvalidToken
	}

	interview, err := e.repo.TransitionStatus(ctx, interviewID, model.StatusInvitationSent, model.StatusCancelled, nil)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	if err := e.applications.MarkRejected(ctx, interview.ApplicationID); err != nil {
		return nil, err
	}
	e.activity.Append(ctx, &interview.JobID, actionInvitationRejected, triggerManual, nil, map[string]interface{}{"interview_id": interview.ID})

	// buffer promotion failure does NOT fail the reject
	_ = e.shortlisting.PromoteFromBuffer(ctx, interview.JobID, interview.RankAtTime)

	return interview, nil
}

// SelectSlot validates the slot against business hours and records it
// without advancing status; Confirm is a separate, explicit step.
func (e *Engine) SelectSlot(ctx context.Context, interviewID string, slot model.Slot) (*model.Interview, error) {
	if !e.withinBusinessHours(slot) {
		return nil, ErrSlotOutOfHours
	}

	interview, err := e.repo.TransitionStatus(ctx, interviewID, model.StatusSlotPending, model.StatusSlotPending, func(iv *model.Interview) {
		start := slot.Start
		iv.ScheduledTime = &start
	})
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	e.activity.Append(ctx, &interview.JobID, actionSlotSelected, triggerManual, nil, map[string]interface{}{
		"interview_id": interview.ID, "scheduled_time": slot.Start,
	})
	return interview, nil
}

func (e *Engine) withinBusinessHours(slot model.Slot) bool {
	wd := slot.Start.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	hour := slot.Start.Hour()
	return hour >= e.businessStartHour && hour < e.businessEndHour
}

// Confirm requests a calendar event, sends confirmation emails, and scores
// no-show risk. Calendar/email/risk failures are non-fatal.
func (e *Engine) Confirm(ctx context.Context, interviewID string) (*model.Interview, error) {
	interview, err := e.repo.TransitionStatus(ctx, interviewID, model.StatusSlotPending, model.StatusConfirmed, nil)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, err
	}
	if interview.ScheduledTime == nil {
		return nil, ErrInvalidState
	}

	if ref, err := e.calendar.CreateEvent(ctx, interview); err == nil {
		_ = e.repo.SetCalendarEventRef(ctx, interview.ID, ref)
		interview.CalendarEventRef = &ref
	}
	if err := e.email.SendConfirmation(ctx, interview); err != nil {
		// best-effort
	}
	if risk, err := e.risk.Score(ctx, interview); err == nil {
		_ = e.repo.SetNoShowRisk(ctx, interview.ID, risk)
		interview.NoShowRisk = risk
	}

	e.activity.Append(ctx, &interview.JobID, actionSlotConfirmed, triggerManual, nil, map[string]interface{}{"interview_id": interview.ID})
	return interview, nil
}

// Cancel is recruiter-initiated; it triggers a buffer promotion. Only a
// confirmed interview can be cancelled this way — terminal states
// (completed, cancelled, expired, no_show) never transition again.
func (e *Engine) Cancel(ctx context.Context, interviewID, reason string) (*model.Interview, error) {
	interview, err := e.repo.TransitionStatus(ctx, interviewID, model.StatusConfirmed, model.StatusCancelled, nil)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	e.activity.Append(ctx, &interview.JobID, actionInterviewCancelled, triggerManual, nil, map[string]interface{}{
		"interview_id": interview.ID, "reason": reason,
	})
	_ = e.shortlisting.PromoteFromBuffer(ctx, interview.JobID, interview.RankAtTime)
	return interview, nil
}

// MarkAttendance records a recruiter's completed/no_show call on a
// confirmed interview.
func (e *Engine) MarkAttendance(ctx context.Context, interviewID string, attendance model.AttendanceStatus) (*model.Interview, error) {
	newStatus := model.StatusCompleted
	action := actionInterviewCompleted
	if attendance == model.AttendanceNoShow {
		newStatus = model.StatusNoShow
		action = actionInterviewNoShow
	}

	interview, err := e.repo.TransitionStatus(ctx, interviewID, model.StatusConfirmed, newStatus, nil)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	e.activity.Append(ctx, &interview.JobID, action, triggerManual, nil, map[string]interface{}{"interview_id": interview.ID})
	return interview, nil
}

func (e *Engine) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	return e.repo.GetByID(ctx, id)
}

// JobIDForInterview implements modules/negotiation/handler's
// InterviewJobLookup so that module can start a negotiation session without
// importing this one.
func (e *Engine) JobIDForInterview(ctx context.Context, interviewID string) (string, error) {
	interview, err := e.repo.GetByID(ctx, interviewID)
	if err != nil {
		return "", err
	}
	return interview.JobID, nil
}

// AvailableSlots returns the recruiter's free slots over the next 14 days,
// restricted to business hours, for the GET /interview/available-slots/:id
// endpoint.
func (e *Engine) AvailableSlots(ctx context.Context, interviewID string) ([]model.Slot, error) {
	if _, err := e.repo.GetByID(ctx, interviewID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	free, err := e.calendar.FreeSlots(ctx, now, now.AddDate(0, 0, 14))
	if err != nil {
		return nil, err
	}
	var out []model.Slot
	for _, s := range free {
		if e.withinBusinessHours(s) {
			out = append(out, s)
		}
	}
	return out, nil
}
