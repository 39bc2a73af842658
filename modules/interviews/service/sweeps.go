package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"github.com/andreypavlenko/jobber/modules/interviews/ports"
)

// SweepResult collects per-item errors under a fault boundary so one
// interview's failure never aborts the rest of the sweep.
type SweepResult struct {
	Processed int
	Errors    []error
}

func (s *SweepResult) record(err error) {
	if err != nil {
		s.Errors = append(s.Errors, err)
	}
}

// SweepExpiredInvitations expires invitation_sent interviews past their
// confirmation_deadline, rejects the owning application, and tries a
// buffer promotion for each — each under its own inner fault boundary.
func (e *Engine) SweepExpiredInvitations(ctx context.Context, now time.Time) *SweepResult {
	result := &SweepResult{}
	interviews, err := e.repo.ListExpiredInvitations(ctx, now)
	if err != nil {
		result.record(err)
		return result
	}

	for _, iv := range interviews {
		err := e.expireOne(ctx, iv, model.StatusInvitationSent, actionInvitationExpired)
		result.record(err)
		if err == nil {
			result.Processed++
		}
	}
	return result
}

// SweepExpiredSlotSelections is symmetric for slot_pending interviews.
func (e *Engine) SweepExpiredSlotSelections(ctx context.Context, now time.Time) *SweepResult {
	result := &SweepResult{}
	interviews, err := e.repo.ListExpiredSlotSelections(ctx, now)
	if err != nil {
		result.record(err)
		return result
	}

	for _, iv := range interviews {
		err := e.expireOne(ctx, iv, model.StatusSlotPending, actionSlotSelectionExpired)
		result.record(err)
		if err == nil {
			result.Processed++
		}
	}
	return result
}

func (e *Engine) expireOne(ctx context.Context, iv *model.Interview, expectedStatus model.Status, action string) error {
	updated, err := e.repo.TransitionStatus(ctx, iv.ID, expectedStatus, model.StatusExpired, nil)
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return nil // already moved on concurrently; not a failure
		}
		return err
	}

	if err := e.applications.MarkRejected(ctx, updated.ApplicationID); err != nil {
		return err
	}
	e.activity.Append(ctx, &updated.JobID, action, triggerScheduled, nil, map[string]interface{}{"interview_id": updated.ID})
	_ = e.shortlisting.PromoteFromBuffer(ctx, updated.JobID, updated.RankAtTime)
	return nil
}

// SweepReminders sends a single reminder per confirmed interview whose
// scheduled_time falls in [windowStart, windowEnd], deduping against the
// activity log by checking hasReminded.
func (e *Engine) SweepReminders(ctx context.Context, windowStart, windowEnd time.Time, hasReminded func(ctx context.Context, interviewID string) (bool, error)) *SweepResult {
	result := &SweepResult{}
	interviews, err := e.repo.ListDueForReminder(ctx, windowStart, windowEnd)
	if err != nil {
		result.record(err)
		return result
	}

	for _, iv := range interviews {
		already, err := hasReminded(ctx, iv.ID)
		if err != nil {
			result.record(err)
			continue
		}
		if already {
			continue
		}
		if err := e.email.SendReminder(ctx, iv); err != nil {
			result.record(err)
			continue
		}
		e.activity.Append(ctx, &iv.JobID, "interview_reminder_sent", triggerScheduled, nil, map[string]interface{}{"interview_id": iv.ID})
		result.Processed++
	}
	return result
}

// SweepRiskRefresh re-scores every confirmed, future interview and logs a
// risk_score_updated event when the value moves by more than 0.1.
func (e *Engine) SweepRiskRefresh(ctx context.Context, now time.Time) *SweepResult {
	result := &SweepResult{}
	interviews, err := e.repo.ListActiveForRiskRefresh(ctx, now)
	if err != nil {
		result.record(err)
		return result
	}

	for _, iv := range interviews {
		newRisk, err := e.risk.Score(ctx, iv)
		if err != nil {
			result.record(err)
			continue
		}
		oldRisk := iv.NoShowRisk
		if err := e.repo.SetNoShowRisk(ctx, iv.ID, newRisk); err != nil {
			result.record(err)
			continue
		}
		if math.Abs(newRisk-oldRisk) > 0.1 {
			e.activity.Append(ctx, &iv.JobID, "risk_score_updated", triggerScheduled, nil, map[string]interface{}{
				"interview_id": iv.ID, "old_risk": oldRisk, "new_risk": newRisk,
			})
		}
		result.Processed++
	}
	return result
}
