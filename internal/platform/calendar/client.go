// Package calendar wraps Google Calendar as the hiring orchestrator's
// calendar provider collaborator: free/busy lookup and event creation.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/retry"
	"github.com/andreypavlenko/jobber/modules/interviews/model"
	negotiationModel "github.com/andreypavlenko/jobber/modules/negotiation/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarv3 "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client implements modules/interviews/ports.CalendarProvider over the
// Google Calendar v3 API, authenticated with a long-lived OAuth2 refresh
// token.
type Client struct {
	svc        *calendarv3.Service
	calendarID string
	timeout    time.Duration
	log        *logger.Logger
}

// NewClient builds an authenticated Calendar client from a stored OAuth2
// refresh token. Fails fast at startup rather than on the first booked
// interview.
func NewClient(ctx context.Context, clientID, clientSecret, refreshToken, calendarID string, timeout time.Duration, log *logger.Logger) (*Client, error) {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendarv3.CalendarEventsScope, calendarv3.CalendarReadonlyScope},
	}
	tokenSource := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := calendarv3.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("calendar: new service: %w", err)
	}

	return &Client{svc: svc, calendarID: calendarID, timeout: timeout, log: log}, nil
}

// FreeSlots lists the recruiter's free/busy windows over [from, to] and
// turns the busy intervals into the complement set of hourly slots, at any
// hour of any day; the available-slots endpoint filters them to business
// hours. It
// implements modules/interviews/ports.CalendarProvider.
func (c *Client) FreeSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	windows, err := c.freeSlotWindows(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]model.Slot, len(windows))
	for i, w := range windows {
		out[i] = model.Slot{Start: w.Start, End: w.End}
	}
	return out, nil
}

// NegotiationAdapter implements modules/negotiation/service.FreeSlotsLookup
// over the same Client, returning negotiation's own Slot type so that
// package never imports modules/interviews.
type NegotiationAdapter struct {
	*Client
}

func (a *NegotiationAdapter) FreeSlots(ctx context.Context, from, to time.Time) ([]negotiationModel.Slot, error) {
	windows, err := a.freeSlotWindows(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]negotiationModel.Slot, len(windows))
	for i, w := range windows {
		out[i] = negotiationModel.Slot{Start: w.Start, End: w.End}
	}
	return out, nil
}

type timeWindow struct {
	Start time.Time
	End   time.Time
}

func (c *Client) freeSlotWindows(ctx context.Context, from, to time.Time) ([]timeWindow, error) {
	if c == nil {
		return nil, fmt.Errorf("calendar: not configured (GOOGLE_REFRESH_TOKEN unset)")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var busy []*calendarv3.TimePeriod
	err := retry.Do(ctx, func(ctx context.Context) error {
		resp, callErr := c.svc.Freebusy.Query(&calendarv3.FreeBusyRequest{
			TimeMin: from.Format(time.RFC3339),
			TimeMax: to.Format(time.RFC3339),
			Items:   []*calendarv3.FreeBusyRequestItem{{Id: c.calendarID}},
		}).Context(ctx).Do()
		if callErr != nil {
			return callErr
		}
		cal, ok := resp.Calendars[c.calendarID]
		if !ok {
			return nil
		}
		busy = cal.Busy
		return nil
	})
	if err != nil {
		c.log.Warn("calendar_freebusy_failed", zap.Error(err))
		return nil, err
	}

	slots := complementHourlySlots(from, to, busy)
	out := make([]timeWindow, len(slots))
	for i, s := range slots {
		out[i] = timeWindow{Start: s.Start, End: s.End}
	}
	return out, nil
}

// complementHourlySlots walks [from, to] hour by hour and keeps every slot
// that doesn't overlap a busy period, giving the negotiation engine a
// deterministic, enumerable candidate set.
func complementHourlySlots(from, to time.Time, busy []*calendarv3.TimePeriod) []model.Slot {
	var slots []model.Slot
	cursor := from.Truncate(time.Hour)
	for cursor.Before(to) {
		slotEnd := cursor.Add(time.Hour)
		if !overlapsBusy(cursor, slotEnd, busy) {
			slots = append(slots, model.Slot{Start: cursor, End: slotEnd})
		}
		cursor = slotEnd
	}
	return slots
}

func overlapsBusy(start, end time.Time, busy []*calendarv3.TimePeriod) bool {
	for _, b := range busy {
		busyStart, err1 := time.Parse(time.RFC3339, b.Start)
		busyEnd, err2 := time.Parse(time.RFC3339, b.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if start.Before(busyEnd) && busyStart.Before(end) {
			return true
		}
	}
	return false
}

// CreateEvent books the confirmed interview on the recruiter's calendar.
func (c *Client) CreateEvent(ctx context.Context, interview *model.Interview) (string, error) {
	if c == nil {
		return "", fmt.Errorf("calendar: not configured (GOOGLE_REFRESH_TOKEN unset)")
	}
	if interview.ScheduledTime == nil {
		return "", fmt.Errorf("calendar: interview %s has no scheduled_time", interview.ID)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event := &calendarv3.Event{
		Summary: fmt.Sprintf("Interview: application %s", interview.ApplicationID),
		Start:   &calendarv3.EventDateTime{DateTime: interview.ScheduledTime.Format(time.RFC3339)},
		End:     &calendarv3.EventDateTime{DateTime: interview.ScheduledTime.Add(time.Hour).Format(time.RFC3339)},
	}

	var created *calendarv3.Event
	err := retry.Do(ctx, func(ctx context.Context) error {
		var callErr error
		created, callErr = c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
		return callErr
	})
	if err != nil {
		c.log.Warn("calendar_create_event_failed", zap.String("interview_id", interview.ID), zap.Error(err))
		return "", err
	}
	return created.Id, nil
}
