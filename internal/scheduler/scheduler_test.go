package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andreypavlenko/jobber/internal/config"
	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/metrics"
	interviewModel "github.com/andreypavlenko/jobber/modules/interviews/model"
	interviewService "github.com/andreypavlenko/jobber/modules/interviews/service"
	jobModel "github.com/andreypavlenko/jobber/modules/jobs/model"
	shortlistModel "github.com/andreypavlenko/jobber/modules/shortlisting/model"
	shortlistService "github.com/andreypavlenko/jobber/modules/shortlisting/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- jobs repository fake ---

type fakeJobRepo struct {
	jobs []*jobModel.Job
}

func (f *fakeJobRepo) Create(ctx context.Context, job *jobModel.Job) error { return nil }
func (f *fakeJobRepo) GetByID(ctx context.Context, userID, jobID string) (*jobModel.Job, error) {
	return nil, nil
}
func (f *fakeJobRepo) GetByIDUnscoped(ctx context.Context, jobID string) (*jobModel.Job, error) {
	return nil, nil
}
func (f *fakeJobRepo) ListActiveForCycle(ctx context.Context) ([]*jobModel.Job, error) {
	return f.jobs, nil
}
func (f *fakeJobRepo) List(ctx context.Context, userID string, limit, offset int, status, sortBy, sortOrder string) ([]*jobModel.JobDTO, int, error) {
	return nil, 0, nil
}
func (f *fakeJobRepo) Update(ctx context.Context, job *jobModel.Job) error { return nil }
func (f *fakeJobRepo) Delete(ctx context.Context, userID, jobID string) error { return nil }

// --- shortlisting engine dependencies ---

type fakeApplicationStore struct{}

func (fakeApplicationStore) ListPendingProcessed(ctx context.Context, jobID string) ([]shortlistModel.CandidateRef, error) {
	return nil, nil
}
func (fakeApplicationStore) ListByStatus(ctx context.Context, jobID, status string) ([]shortlistModel.CandidateRef, error) {
	return nil, nil
}
func (fakeApplicationStore) CountByStatus(ctx context.Context, jobID, status string) (int, error) {
	return 0, nil
}
func (fakeApplicationStore) AssignRank(ctx context.Context, appID, status string, rank int) (bool, error) {
	return false, nil
}
func (fakeApplicationStore) PromoteSmallestBufferRank(ctx context.Context, jobID string, vacatedRank int) (*shortlistModel.CandidateRef, error) {
	return nil, nil
}

type fakeJobLookup struct{}

func (fakeJobLookup) GetOpeningsAndBufferTarget(ctx context.Context, jobID string) (int, int, error) {
	return 1, 1, nil
}

type fakeInviter struct{}

func (fakeInviter) InviteCandidate(ctx context.Context, jobID, applicationID string, rankAtTime int) error {
	return nil
}

type fakeInterviewLookup struct{}

func (fakeInterviewLookup) HasConfirmedInterviewWithin(ctx context.Context, jobID string, window time.Duration) (bool, error) {
	return false, nil
}

type alwaysOffFlags struct{}

func (alwaysOffFlags) IsEnabled(ctx context.Context, flag, jobID string) bool { return false }

type recordingActivity struct {
	entries []string
}

func (r *recordingActivity) Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{}) {
	r.entries = append(r.entries, actionType)
}

// --- interviews engine dependencies ---

type fakeInterviewRepo struct{}

func (fakeInterviewRepo) GetByApplicationID(ctx context.Context, applicationID string) (*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) GetByID(ctx context.Context, id string) (*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) Create(ctx context.Context, interview *interviewModel.Interview) error {
	return nil
}
func (fakeInterviewRepo) TransitionStatus(ctx context.Context, id string, expectedStatus, newStatus interviewModel.Status, mutate func(*interviewModel.Interview)) (*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) ListExpiredInvitations(ctx context.Context, now time.Time) ([]*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) ListExpiredSlotSelections(ctx context.Context, now time.Time) ([]*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) ListDueForReminder(ctx context.Context, windowStart, windowEnd time.Time) ([]*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) ListActiveForRiskRefresh(ctx context.Context, now time.Time) ([]*interviewModel.Interview, error) {
	return nil, nil
}
func (fakeInterviewRepo) SetCalendarEventRef(ctx context.Context, id string, ref string) error {
	return nil
}
func (fakeInterviewRepo) SetNoShowRisk(ctx context.Context, id string, risk float64) error {
	return nil
}
func (fakeInterviewRepo) CountConfirmedWithin(ctx context.Context, jobID string, now, horizon time.Time) (int, error) {
	return 0, nil
}

type fakeApplicationLookup struct{}

func (fakeApplicationLookup) GetInterviewContext(ctx context.Context, applicationID string) (string, string, int, error) {
	return "job-1", applicationID, 1, nil
}
func (fakeApplicationLookup) MarkRejected(ctx context.Context, applicationID string) error {
	return nil
}

type fakeShortlistingCallback struct{}

func (fakeShortlistingCallback) PromoteFromBuffer(ctx context.Context, jobID string, vacatedRank int) error {
	return nil
}

type fakeEmailSender struct{}

func (fakeEmailSender) SendInvitation(ctx context.Context, interview *interviewModel.Interview, acceptToken, rejectToken string) error {
	return nil
}
func (fakeEmailSender) SendSlotSelection(ctx context.Context, interview *interviewModel.Interview) error {
	return nil
}
func (fakeEmailSender) SendConfirmation(ctx context.Context, interview *interviewModel.Interview) error {
	return nil
}
func (fakeEmailSender) SendReminder(ctx context.Context, interview *interviewModel.Interview) error {
	return nil
}
func (fakeEmailSender) SendNegotiationEscalation(ctx context.Context, interview *interviewModel.Interview) error {
	return nil
}

type fakeCalendarProvider struct{}

func (fakeCalendarProvider) CreateEvent(ctx context.Context, interview *interviewModel.Interview) (string, error) {
	return "", nil
}
func (fakeCalendarProvider) FreeSlots(ctx context.Context, from, to time.Time) ([]interviewModel.Slot, error) {
	return nil, nil
}

type fakeRiskScorer struct{}

func (fakeRiskScorer) Score(ctx context.Context, interview *interviewModel.Interview) (float64, error) {
	return 0, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Generate(interviewID string, action string) (string, error) { return "", nil }
func (fakeTokenIssuer) Validate(interviewID, token, expectedAction string) error    { return nil }

type fakeReminderDeduper struct{}

func (fakeReminderDeduper) HasReminded(ctx context.Context, interviewID string) (bool, error) {
	return false, nil
}

func newTestCycler(t *testing.T, jobs *fakeJobRepo, redisClient *redis.Client) *Cycler {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	interviews := interviewService.New(
		fakeInterviewRepo{}, fakeApplicationLookup{}, fakeShortlistingCallback{},
		alwaysOffFlags{}, &recordingActivity{}, fakeEmailSender{}, fakeCalendarProvider{},
		fakeRiskScorer{}, fakeTokenIssuer{},
		interviewService.Config{ConfirmationDeadline: 48 * time.Hour, SlotSelectionDeadline: 24 * time.Hour, BusinessStartHour: 9, BusinessEndHour: 18},
	)
	shortlist := shortlistService.New(fakeApplicationStore{}, fakeJobLookup{}, fakeInviter{}, fakeInterviewLookup{}, alwaysOffFlags{}, &recordingActivity{})

	cfg := config.AutomationConfig{
		CyclePeriod:         5 * time.Minute,
		SchedulerLeaseTTL:   4 * time.Minute,
		ReminderWindowStart: 23 * time.Hour,
		ReminderWindowEnd:   25 * time.Hour,
	}

	return New(jobs, shortlist, interviews, fakeReminderDeduper{}, &recordingActivity{}, metrics.New(), redisClient, log, cfg)
}

func TestCycler_RunOnce(t *testing.T) {
	t.Run("acquires the lease, runs the cycle, and releases the lease", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()
		redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer redisClient.Close()

		jobs := &fakeJobRepo{jobs: []*jobModel.Job{{ID: "job-1"}, {ID: "job-2", Expired: true}}}
		cycler := newTestCycler(t, jobs, redisClient)

		cycler.RunOnce(context.Background())

		assert.False(t, mr.Exists(leaseKey), "lease should be released after the cycle completes")
	})

	t.Run("a second concurrent call is skipped by the in-flight guard", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()
		redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer redisClient.Close()

		jobs := &fakeJobRepo{}
		cycler := newTestCycler(t, jobs, redisClient)

		cycler.inFlight = true
		cycler.RunOnce(context.Background())

		assert.True(t, cycler.inFlight, "guard must not have been released by the skipped call")
	})

	t.Run("leaves a lease held by another replica in place", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()
		redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer redisClient.Close()
		require.NoError(t, redisClient.Set(context.Background(), leaseKey, "1", 0).Err())

		jobs := &fakeJobRepo{jobs: []*jobModel.Job{{ID: "job-1"}}}
		cycler := newTestCycler(t, jobs, redisClient)

		cycler.RunOnce(context.Background())

		assert.True(t, mr.Exists(leaseKey), "held lease must not be deleted by a replica that didn't acquire it")
	})
}
