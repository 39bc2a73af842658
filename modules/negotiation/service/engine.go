// Package service implements the negotiation engine: parses
// candidate availability, intersects it against recruiter free slots, and
// advances or escalates a bounded round-robin when no match is found.
package service

import (
	"context"
	"sort"
	"time"

	"github.com/andreypavlenko/jobber/modules/negotiation/model"
	"github.com/andreypavlenko/jobber/modules/negotiation/ports"
)

const (
	flagGeminiParsing   = "gemini_parsing"
	flagGeminiResponses = "gemini_responses"

	triggerAuto = "auto"

	actionNegotiationEscalated = "negotiation_escalated"

	maxSuggestions = 3
)

type Engine struct {
	repo       ports.Repository
	llmParser  ports.AvailabilityParser
	ruleParser ports.AvailabilityParser
	llmReply   ports.ResponseGenerator
	template   ports.ResponseGenerator
	freeSlots  FreeSlotsLookup
	flags      ports.FlagResolver
	activity   ports.ActivityLogger
	notifier   ports.RecruiterNotifier

	maxRounds int
	now       func() time.Time
}

// FreeSlotsLookup is the narrow slice of interviews/ports.CalendarProvider
// this engine needs (recruiter free/busy windows), kept local so this
// package doesn't import modules/interviews.
type FreeSlotsLookup interface {
	FreeSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error)
}

func New(repo ports.Repository, llmParser, ruleParser ports.AvailabilityParser, llmReply, template ports.ResponseGenerator,
	freeSlots FreeSlotsLookup, flags ports.FlagResolver, activity ports.ActivityLogger, notifier ports.RecruiterNotifier,
	maxRounds int, now func() time.Time) *Engine {
	return &Engine{
		repo: repo, llmParser: llmParser, ruleParser: ruleParser, llmReply: llmReply, template: template,
		freeSlots: freeSlots, flags: flags, activity: activity, notifier: notifier,
		maxRounds: maxRounds, now: now,
	}
}

// GetOrCreate returns the interview's negotiation session, creating one at
// round 1/active if none exists yet.
func (e *Engine) GetOrCreate(ctx context.Context, interviewID, jobID string) (*model.NegotiationSession, error) {
	session, err := e.repo.GetByInterviewID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}
	session = &model.NegotiationSession{
		InterviewID: interviewID,
		JobID:       jobID,
		Round:       1,
		MaxRounds:   e.maxRounds,
		State:       model.StateActive,
	}
	if err := e.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance runs one negotiation round: parse the
// candidate's message, intersect against the recruiter's free slots in
// [windowStart, windowEnd], and either suggest matches, ask for
// alternatives, or escalate.
func (e *Engine) Advance(ctx context.Context, interviewID, jobID, candidateMessage string, windowStart, windowEnd time.Time) (*model.RoundOutcome, error) {
	session, err := e.GetOrCreate(ctx, interviewID, jobID)
	if err != nil {
		return nil, err
	}
	if session.State != model.StateActive {
		return &model.RoundOutcome{Session: session}, nil
	}

	session.History = append(session.History, model.HistoryEntry{
		Actor: "candidate", Message: candidateMessage, Timestamp: e.now(),
	})

	availability, err := e.parse(ctx, jobID, candidateMessage)
	if err != nil {
		return nil, err
	}

	free, err := e.freeSlots.FreeSlots(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	matches := intersect(free, availability)

	if len(matches) > 0 {
		suggestions := matches
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}
		session.UpdatedAt = e.now()
		if err := e.repo.Update(ctx, session); err != nil {
			return nil, err
		}
		return &model.RoundOutcome{Session: session, Suggestions: suggestions}, nil
	}

	if session.Round >= session.MaxRounds {
		session.State = model.StateEscalated
		session.UpdatedAt = e.now()
		if err := e.repo.Update(ctx, session); err != nil {
			return nil, err
		}
		if e.notifier != nil {
			_ = e.notifier.NotifyEscalation(ctx, interviewID)
		}
		e.activity.Append(ctx, &jobID, actionNegotiationEscalated, triggerAuto, nil, map[string]interface{}{
			"interview_id": interviewID, "round": session.Round,
		})
		return &model.RoundOutcome{Session: session, Escalated: true}, nil
	}

	session.Round++
	message, err := e.generateNoMatchResponse(ctx, jobID, availability)
	if err != nil {
		return nil, err
	}
	session.History = append(session.History, model.HistoryEntry{
		Actor: "system", Message: message, Timestamp: e.now(),
	})
	session.UpdatedAt = e.now()
	if err := e.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return &model.RoundOutcome{Session: session, Message: message}, nil
}

// parse prefers the LLM parser when gemini_parsing is enabled, falling back
// to the rule-based parser on a disabled flag, a nil result, or an error.
func (e *Engine) parse(ctx context.Context, jobID, freeText string) (*model.Availability, error) {
	if e.flags.IsEnabled(ctx, flagGeminiParsing, jobID) {
		availability, err := e.llmParser.Parse(ctx, freeText)
		if err == nil && availability != nil {
			return availability, nil
		}
	}
	return e.ruleParser.Parse(ctx, freeText)
}

func (e *Engine) generateNoMatchResponse(ctx context.Context, jobID string, availability *model.Availability) (string, error) {
	if e.flags.IsEnabled(ctx, flagGeminiResponses, jobID) {
		message, err := e.llmReply.GenerateNoMatchResponse(ctx, availability)
		if err == nil && message != "" {
			return message, nil
		}
	}
	return e.template.GenerateNoMatchResponse(ctx, availability)
}

// intersect returns free slots matching every given constraint, ordered by
// earliest start.
func intersect(free []model.Slot, availability *model.Availability) []model.Slot {
	var out []model.Slot
	for _, s := range free {
		if !availability.StartDate.IsZero() && s.Start.Before(availability.StartDate) {
			continue
		}
		if !availability.EndDate.IsZero() && s.Start.After(availability.EndDate) {
			continue
		}
		if availability.PreferredDays != nil && !containsWeekday(availability.PreferredDays, s.Start.Weekday()) {
			continue
		}
		if availability.PreferredHours != nil {
			hour := s.Start.Hour()
			if hour < availability.PreferredHours.StartHour || hour >= availability.PreferredHours.EndHour {
				continue
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, w := range days {
		if w == d {
			return true
		}
	}
	return false
}
