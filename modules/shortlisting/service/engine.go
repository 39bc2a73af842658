// Package service implements the shortlisting engine: ranks
// applications into shortlisted/buffer/pending, promotes buffer candidates
// into vacated shortlist slots, and backfills the buffer from pending.
package service

import (
	"context"
	"time"

	"github.com/andreypavlenko/jobber/modules/shortlisting/model"
	"github.com/andreypavlenko/jobber/modules/shortlisting/ports"
)

const (
	flagAutoShortlisting = "auto_shortlisting"
	flagAutoPromotion    = "auto_promotion"

	statusPending     = "pending"
	statusShortlisted = "shortlisted"
	statusBuffer      = "buffer"
	statusRejected    = "rejected"

	triggerAuto = "auto"

	actionShortlisted     = "applications_shortlisted"
	actionBufferFilled    = "buffer_filled"
	actionBufferPromotion = "buffer_promotion"

	imminentInterviewWindow = 24 * time.Hour
)

type Engine struct {
	store      ports.ApplicationStore
	jobLookup  ports.JobLookup
	inviter    ports.InvitationSender
	interviews ports.InterviewLookup
	flags      ports.FlagResolver
	activity   ports.ActivityLogger
}

func New(store ports.ApplicationStore, jobLookup ports.JobLookup, inviter ports.InvitationSender, interviews ports.InterviewLookup, flags ports.FlagResolver, activity ports.ActivityLogger) *Engine {
	return &Engine{store: store, jobLookup: jobLookup, inviter: inviter, interviews: interviews, flags: flags, activity: activity}
}

// AutoShortlist assigns ranks 1..openings to the highest-scoring pending,
// ai_processed applications, then fills the next buffer_target with the
// next highest scores.
func (e *Engine) AutoShortlist(ctx context.Context, jobID string) (*model.ShortlistResult, error) {
	if !e.flags.IsEnabled(ctx, flagAutoShortlisting, jobID) {
		return &model.ShortlistResult{}, nil
	}

	openings, bufferTarget, err := e.jobLookup.GetOpeningsAndBufferTarget(ctx, jobID)
	if err != nil {
		return nil, err
	}

	candidates, err := e.store.ListPendingProcessed(ctx, jobID)
	if err != nil {
		return nil, err
	}

	result := &model.ShortlistResult{}
	rank := 1
	for _, c := range candidates {
		if c.ManualOverride {
			continue
		}

		switch {
		case rank <= openings:
			ok, err := e.store.AssignRank(ctx, c.ApplicationID, statusShortlisted, rank)
			if err != nil {
				return nil, err
			}
			if ok {
				result.Shortlisted++
				rank++
			}
		case rank <= openings+bufferTarget:
			ok, err := e.store.AssignRank(ctx, c.ApplicationID, statusBuffer, rank)
			if err != nil {
				return nil, err
			}
			if ok {
				result.Buffer++
				rank++
			}
		default:
			// buffer and shortlist are both full; remaining candidates stay pending.
		}
	}

	e.activity.Append(ctx, &jobID, actionShortlisted, triggerAuto, nil, map[string]interface{}{
		"shortlisted": result.Shortlisted,
		"buffer":      result.Buffer,
	})

	return result, nil
}

// PromoteFromBuffer fills a vacated shortlist rank from the buffer, then
// triggers a buffer backfill and an interview invitation for the promoted
// candidate.
func (e *Engine) PromoteFromBuffer(ctx context.Context, jobID string, vacatedRank int) (*model.PromotionResult, error) {
	promoted, err := e.store.PromoteSmallestBufferRank(ctx, jobID, vacatedRank)
	if err != nil {
		return nil, err
	}
	if promoted == nil {
		return &model.PromotionResult{OK: false, Reason: "empty_buffer"}, nil
	}

	e.activity.Append(ctx, &jobID, actionBufferPromotion, triggerAuto, nil, map[string]interface{}{
		"application_id": promoted.ApplicationID,
		"promoted_rank":  vacatedRank,
	})

	if _, err := e.BackfillBuffer(ctx, jobID); err != nil {
		return nil, err
	}

	if e.inviter != nil {
		if err := e.inviter.InviteCandidate(ctx, jobID, promoted.ApplicationID, vacatedRank); err != nil {
			return nil, err
		}
	}

	return &model.PromotionResult{OK: true, PromotedAppID: promoted.ApplicationID, PromotedToRank: vacatedRank}, nil
}

// BackfillBuffer fills buffer slots from pending (highest fit_score first)
// up to buffer_target. Idempotent.
func (e *Engine) BackfillBuffer(ctx context.Context, jobID string) (int, error) {
	if !e.flags.IsEnabled(ctx, flagAutoPromotion, jobID) {
		return 0, nil
	}

	openings, bufferTarget, err := e.jobLookup.GetOpeningsAndBufferTarget(ctx, jobID)
	if err != nil {
		return 0, err
	}

	currentBuffer, err := e.store.CountByStatus(ctx, jobID, statusBuffer)
	if err != nil {
		return 0, err
	}
	if currentBuffer >= bufferTarget {
		return 0, nil
	}

	pending, err := e.store.ListPendingProcessed(ctx, jobID)
	if err != nil {
		return 0, err
	}

	filled := 0
	nextRank := openings + currentBuffer + 1
	for _, c := range pending {
		if filled+currentBuffer >= bufferTarget {
			break
		}
		if c.ManualOverride {
			continue
		}
		ok, err := e.store.AssignRank(ctx, c.ApplicationID, statusBuffer, nextRank)
		if err != nil {
			return filled, err
		}
		if ok {
			filled++
			nextRank++
		}
	}

	if filled > 0 {
		e.activity.Append(ctx, &jobID, actionBufferFilled, triggerAuto, nil, map[string]interface{}{"filled": filled})
	}

	return filled, nil
}

// CanPromote reports whether a buffer candidate is available to fill a
// vacancy. It is conservative: even with buffer available, it refuses to
// promote while a confirmed interview for the job is imminent, since the vacancy it would be filling may not yet be real.
func (e *Engine) CanPromote(ctx context.Context, jobID string) (bool, error) {
	count, err := e.store.CountByStatus(ctx, jobID, statusBuffer)
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	if e.interviews != nil {
		imminent, err := e.interviews.HasConfirmedInterviewWithin(ctx, jobID, imminentInterviewWindow)
		if err != nil {
			return false, err
		}
		if imminent {
			return false, nil
		}
	}
	return true, nil
}

// Status reports a job's current shortlisting counts.
func (e *Engine) Status(ctx context.Context, jobID string) (*model.StatusSnapshot, error) {
	openings, bufferTarget, err := e.jobLookup.GetOpeningsAndBufferTarget(ctx, jobID)
	if err != nil {
		return nil, err
	}
	shortlisted, err := e.store.CountByStatus(ctx, jobID, statusShortlisted)
	if err != nil {
		return nil, err
	}
	buffer, err := e.store.CountByStatus(ctx, jobID, statusBuffer)
	if err != nil {
		return nil, err
	}
	pending, err := e.store.CountByStatus(ctx, jobID, statusPending)
	if err != nil {
		return nil, err
	}
	return &model.StatusSnapshot{
		ShortlistedCount: shortlisted,
		BufferCount:      buffer,
		PendingCount:     pending,
		Openings:         openings,
		BufferTarget:     bufferTarget,
	}, nil
}
