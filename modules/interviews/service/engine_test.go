package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"github.com/andreypavlenko/jobber/modules/interviews/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byApplication map[string]*model.Interview
	byID          map[string]*model.Interview
}

func newMockRepo() *mockRepo {
	return &mockRepo{byApplication: map[string]*model.Interview{}, byID: map[string]*model.Interview{}}
}

func (m *mockRepo) GetByApplicationID(ctx context.Context, applicationID string) (*model.Interview, error) {
	return m.byApplication[applicationID], nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	iv, ok := m.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return iv, nil
}

func (m *mockRepo) Create(ctx context.Context, interview *model.Interview) error {
	interview.ID = "iv-" + interview.ApplicationID
	m.byApplication[interview.ApplicationID] = interview
	m.byID[interview.ID] = interview
	return nil
}

func (m *mockRepo) TransitionStatus(ctx context.Context, id string, expectedStatus, newStatus model.Status, mutate func(*model.Interview)) (*model.Interview, error) {
	iv, ok := m.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if iv.Status != expectedStatus {
		return nil, ports.ErrConflict
	}
	if mutate != nil {
		mutate(iv)
	}
	iv.Status = newStatus
	return iv, nil
}

func (m *mockRepo) ListExpiredInvitations(ctx context.Context, now time.Time) ([]*model.Interview, error) {
	var out []*model.Interview
	for _, iv := range m.byID {
		if iv.Status == model.StatusInvitationSent && iv.ConfirmationDeadline != nil && !iv.ConfirmationDeadline.After(now) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockRepo) ListExpiredSlotSelections(ctx context.Context, now time.Time) ([]*model.Interview, error) {
	return nil, nil
}

func (m *mockRepo) ListDueForReminder(ctx context.Context, windowStart, windowEnd time.Time) ([]*model.Interview, error) {
	return nil, nil
}

func (m *mockRepo) ListActiveForRiskRefresh(ctx context.Context, now time.Time) ([]*model.Interview, error) {
	return nil, nil
}

func (m *mockRepo) SetCalendarEventRef(ctx context.Context, id string, ref string) error { return nil }
func (m *mockRepo) SetNoShowRisk(ctx context.Context, id string, risk float64) error     { return nil }

func (m *mockRepo) CountConfirmedWithin(ctx context.Context, jobID string, now, horizon time.Time) (int, error) {
	count := 0
	for _, iv := range m.byID {
		if iv.JobID == jobID && iv.Status == model.StatusConfirmed && iv.ScheduledTime != nil &&
			!iv.ScheduledTime.Before(now) && !iv.ScheduledTime.After(horizon) {
			count++
		}
	}
	return count, nil
}

type mockApplications struct {
	rejected map[string]bool
}

func (m *mockApplications) GetInterviewContext(ctx context.Context, applicationID string) (string, string, int, error) {
	return "job-1", "cand-1", 2, nil
}

func (m *mockApplications) MarkRejected(ctx context.Context, applicationID string) error {
	if m.rejected == nil {
		m.rejected = map[string]bool{}
	}
	m.rejected[applicationID] = true
	return nil
}

type mockShortlisting struct {
	promoted []string
}

func (m *mockShortlisting) PromoteFromBuffer(ctx context.Context, jobID string, vacatedRank int) error {
	m.promoted = append(m.promoted, jobID)
	return nil
}

type alwaysOnFlags struct{}

func (alwaysOnFlags) IsEnabled(ctx context.Context, flag string, jobID string) bool { return true }

type disabledFlags struct{}

func (disabledFlags) IsEnabled(ctx context.Context, flag string, jobID string) bool { return false }

type noopActivity struct{}

func (noopActivity) Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{}) {
}

type mockEmail struct{}

func (mockEmail) SendInvitation(ctx context.Context, interview *model.Interview, acceptToken, rejectToken string) error {
	return nil
}
func (mockEmail) SendSlotSelection(ctx context.Context, interview *model.Interview) error { return nil }
func (mockEmail) SendConfirmation(ctx context.Context, interview *model.Interview) error  { return nil }
func (mockEmail) SendReminder(ctx context.Context, interview *model.Interview) error      { return nil }
func (mockEmail) SendNegotiationEscalation(ctx context.Context, interview *model.Interview) error {
	return nil
}

type mockCalendar struct{}

func (mockCalendar) CreateEvent(ctx context.Context, interview *model.Interview) (string, error) {
	return "cal-event-1", nil
}
func (mockCalendar) FreeSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	return nil, nil
}

type mockRisk struct{ score float64 }

func (m mockRisk) Score(ctx context.Context, interview *model.Interview) (float64, error) {
	return m.score, nil
}

type mockTokens struct{}

func (mockTokens) Generate(interviewID string, action string) (string, error) {
	return "token-" + action, nil
}
func (mockTokens) Validate(interviewID, token, expectedAction string) error {
	if token != "token-"+expectedAction {
		return errors.New("bad token")
	}
	return nil
}

func newTestEngine(flags ports.FlagResolver) (*Engine, *mockRepo, *mockApplications, *mockShortlisting) {
	repo := newMockRepo()
	apps := &mockApplications{}
	shortlisting := &mockShortlisting{}
	engine := New(repo, apps, shortlisting, flags, noopActivity{}, mockEmail{}, mockCalendar{}, mockRisk{score: 0.3}, mockTokens{}, Config{
		ConfirmationDeadline:  48 * time.Hour,
		SlotSelectionDeadline: 24 * time.Hour,
		BusinessStartHour:     9,
		BusinessEndHour:       18,
	})
	return engine, repo, apps, shortlisting
}

func TestEngine_SendInvitation(t *testing.T) {
	t.Run("creates an invitation and is idempotent on application id", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(alwaysOnFlags{})

		iv1, result1, err := engine.SendInvitation(context.Background(), "app-1")
		require.NoError(t, err)
		assert.True(t, result1.OK)
		assert.Equal(t, model.StatusInvitationSent, iv1.Status)

		iv2, result2, err := engine.SendInvitation(context.Background(), "app-1")
		require.NoError(t, err)
		assert.True(t, result2.OK)
		assert.Equal(t, iv1.ID, iv2.ID)
	})

	t.Run("refuses when automation is disabled for the job", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(disabledFlags{})

		iv, result, err := engine.SendInvitation(context.Background(), "app-2")
		require.NoError(t, err)
		assert.Nil(t, iv)
		assert.False(t, result.OK)
		assert.Equal(t, "automation_disabled", result.Reason)
	})
}

func TestEngine_HandleAcceptReject(t *testing.T) {
	t.Run("accept moves invitation_sent to slot_pending", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-3")

		accepted, err := engine.HandleAccept(context.Background(), iv.ID, "token-accept")

		require.NoError(t, err)
		assert.Equal(t, model.StatusSlotPending, accepted.Status)
		assert.NotNil(t, accepted.SlotSelectionDeadline)
	})

	t.Run("reject cancels the interview, rejects the application, and promotes from buffer", func(t *testing.T) {
		engine, _, apps, shortlisting := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-4")

		rejected, err := engine.HandleReject(context.Background(), iv.ID, "token-reject")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, rejected.Status)
		assert.True(t, apps.rejected["app-4"])
		assert.Contains(t, shortlisting.promoted, "job-1")
	})

	t.Run("replaying accept after reject returns invalid state, not success", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-5")
		_, err := engine.HandleReject(context.Background(), iv.ID, "token-reject")
		require.NoError(t, err)

		_, err = engine.HandleAccept(context.Background(), iv.ID, "token-accept")

		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-6")

		_, err := engine.HandleAccept(context.Background(), iv.ID, "wrong-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestEngine_SelectSlotAndConfirm(t *testing.T) {
	t.Run("rejects a slot outside business hours", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-7")
		_, _ = engine.HandleAccept(context.Background(), iv.ID, "token-accept")

		weekend := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC) // a Saturday
		_, err := engine.SelectSlot(context.Background(), iv.ID, model.Slot{Start: weekend})

		assert.ErrorIs(t, err, ErrSlotOutOfHours)
	})

	t.Run("selects a valid slot then confirms", func(t *testing.T) {
		engine, _, _, _ := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-8")
		_, _ = engine.HandleAccept(context.Background(), iv.ID, "token-accept")

		weekday := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC) // a Monday
		selected, err := engine.SelectSlot(context.Background(), iv.ID, model.Slot{Start: weekday})
		require.NoError(t, err)
		assert.Equal(t, model.StatusSlotPending, selected.Status)
		assert.NotNil(t, selected.ScheduledTime)

		confirmed, err := engine.Confirm(context.Background(), iv.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, confirmed.Status)
		assert.Equal(t, 0.3, confirmed.NoShowRisk)
		assert.NotNil(t, confirmed.CalendarEventRef)
	})
}

func TestEngine_MarkAttendance(t *testing.T) {
	t.Run("marks a confirmed interview as no_show", func(t *testing.T) {
		engine, repo, _, _ := newTestEngine(alwaysOnFlags{})
		iv, _, _ := engine.SendInvitation(context.Background(), "app-9")
		_, _ = engine.HandleAccept(context.Background(), iv.ID, "token-accept")
		weekday := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
		_, _ = engine.SelectSlot(context.Background(), iv.ID, model.Slot{Start: weekday})
		_, _ = engine.Confirm(context.Background(), iv.ID)

		marked, err := engine.MarkAttendance(context.Background(), iv.ID, model.AttendanceNoShow)

		require.NoError(t, err)
		assert.Equal(t, model.StatusNoShow, marked.Status)
		assert.Equal(t, model.StatusNoShow, repo.byID[iv.ID].Status)
	})
}
