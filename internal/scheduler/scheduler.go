// Package scheduler implements the background cycler: a five-minute cron
// tick that sweeps confirmation/slot-selection deadlines, tops up every
// active job's buffer, sends interview reminders, and refreshes no-show
// risk scores — fault-isolated per task so one failing job or interview
// never blocks the rest of the cycle. Unlike the narrow one-way ports
// domain modules pass each other, the cycler is the composition root for a
// cycle that touches every module, so it depends on their concrete
// engine/repository types directly rather than re-declaring narrow
// interfaces for each.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andreypavlenko/jobber/internal/config"
	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/metrics"
	jobsports "github.com/andreypavlenko/jobber/modules/jobs/ports"
	interviewsservice "github.com/andreypavlenko/jobber/modules/interviews/service"
	shortlistingservice "github.com/andreypavlenko/jobber/modules/shortlisting/service"
	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const leaseKey = "scheduler_lease"

// ActivityLogger records the per-cycle summary event.
type ActivityLogger interface {
	Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{})
}

// ReminderDeduper tells the reminder sweep whether a given interview has
// already been reminded, backed by the automation log.
type ReminderDeduper interface {
	HasReminded(ctx context.Context, interviewID string) (bool, error)
}

// Cycler owns the five-minute background cycle.
type Cycler struct {
	jobs       jobsports.JobRepository
	shortlist  *shortlistingservice.Engine
	interviews *interviewsservice.Engine
	reminders  ReminderDeduper
	activity   ActivityLogger
	metrics    *metrics.Recorder
	redis      *redis.Client
	log        *logger.Logger

	period              time.Duration
	leaseTTL            time.Duration
	reminderWindowStart time.Duration
	reminderWindowEnd   time.Duration

	cron     *cron.Cron
	mu       sync.Mutex // guards inFlight
	inFlight bool
}

func New(
	jobs jobsports.JobRepository,
	shortlist *shortlistingservice.Engine,
	interviews *interviewsservice.Engine,
	reminders ReminderDeduper,
	activity ActivityLogger,
	rec *metrics.Recorder,
	redisClient *redis.Client,
	log *logger.Logger,
	cfg config.AutomationConfig,
) *Cycler {
	return &Cycler{
		jobs:                jobs,
		shortlist:           shortlist,
		interviews:          interviews,
		reminders:           reminders,
		activity:            activity,
		metrics:             rec,
		redis:               redisClient,
		log:                 log,
		period:              cfg.CyclePeriod,
		leaseTTL:            cfg.SchedulerLeaseTTL,
		reminderWindowStart: cfg.ReminderWindowStart,
		reminderWindowEnd:   cfg.ReminderWindowEnd,
		cron:                cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
	}
}

// Start schedules the recurring cycle and starts the cron runner. It does
// not block; call Stop to drain the in-flight cycle on shutdown.
func (c *Cycler) Start() {
	c.cron.Schedule(cron.ConstantDelaySchedule{Delay: c.period}, cron.FuncJob(c.runGuarded))
	c.cron.Start()
}

// Stop finishes the in-flight cycle, if any, and then halts the cron
// runner.
func (c *Cycler) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

// runGuarded enforces the single in-flight guard before invoking runCycle.
// robfig/cron runs each tick in its own goroutine and does not skip a tick
// while the previous one is still running, so this guard drops an
// overlapping tick; it also protects a manually-triggered run from racing
// the scheduled one.
func (c *Cycler) runGuarded() {
	if !c.claim() {
		return
	}
	defer c.release()

	ctx, cancel := context.WithTimeout(context.Background(), c.period)
	defer cancel()
	c.runCycle(ctx)
}

// RunOnce runs a single cycle synchronously, useful for tests and for a
// manual "run now" admin trigger. It does not bypass the in-flight guard.
func (c *Cycler) RunOnce(ctx context.Context) {
	if !c.claim() {
		return
	}
	defer c.release()
	c.runCycle(ctx)
}

func (c *Cycler) claim() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Cycler) release() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// runCycle drives one pass of the cycle. Sweeps (deadline expirations, slot
// deadline expirations, reminders, risk refresh) run only while this
// process holds the Redis scheduler_lease: leases guard only sweeps, not
// per-interview/per-job transitions, which rely on their own row-level
// preconditions. Buffer backfill below runs unconditionally; BackfillBuffer
// takes no lock of its own, so backfills of the same job from two replicas
// are not serialized against each other.
func (c *Cycler) runCycle(ctx context.Context) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			sentry.CaptureException(fmt.Errorf("scheduler: panic recovered: %v", r))
			c.log.Error("scheduler_cycle_panic", zap.Any("panic", r))
		}
	}()

	haveLease, release := c.acquireLease(ctx)
	if release != nil {
		defer release()
	}

	errCount := 0
	taskCount := 0

	if haveLease {
		taskCount++
		errCount += len(c.interviews.SweepExpiredInvitations(ctx, time.Now()).Errors)

		taskCount++
		errCount += len(c.interviews.SweepExpiredSlotSelections(ctx, time.Now()).Errors)

		taskCount++
		windowStart := time.Now().Add(c.reminderWindowStart)
		windowEnd := time.Now().Add(c.reminderWindowEnd)
		errCount += len(c.interviews.SweepReminders(ctx, windowStart, windowEnd, c.reminders.HasReminded).Errors)

		taskCount++
		errCount += len(c.interviews.SweepRiskRefresh(ctx, time.Now()).Errors)
	}

	taskCount++
	if err := c.backfillBuffers(ctx); err != nil {
		errCount++
		c.log.Error("scheduler_buffer_backfill_failed", zap.Error(err))
	}

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordCycle(duration)
		c.metrics.RecordAutomation(errCount == 0)
	}

	c.activity.Append(ctx, nil, "background_cycle", "scheduled", nil, map[string]interface{}{
		"duration_ms": duration.Milliseconds(),
		"task_count":  taskCount,
		"error_count": errCount,
	})
	c.log.Info("background_cycle", zap.Int64("duration_ms", duration.Milliseconds()), zap.Int("task_count", taskCount), zap.Int("error_count", errCount))

	if errCount > 3 {
		c.activity.Append(ctx, nil, "admin_alert", "scheduled", nil, map[string]interface{}{
			"reason": "background_cycle_error_threshold_exceeded", "error_count": errCount,
		})
		sentry.CaptureMessage(fmt.Sprintf("scheduler: cycle reported %d errors", errCount))
	}
}

// backfillBuffers tops up every active job's buffer. Each job is fault
// isolated: a single job's failure is recorded and the sweep continues.
func (c *Cycler) backfillBuffers(ctx context.Context) error {
	jobs, err := c.jobs.ListActiveForCycle(ctx)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.Expired {
			continue
		}
		if _, err := c.shortlist.BackfillBuffer(ctx, job.ID); err != nil {
			c.log.Warn("scheduler_job_backfill_failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	return nil
}

// acquireLease attempts the Redis SET NX PX scheduler_lease.
// When Redis is unavailable or another replica holds the lease, sweeps are
// skipped for this cycle but buffer backfill still runs; backfill is guarded
// neither by this lease nor by a lock of its own.
func (c *Cycler) acquireLease(ctx context.Context) (bool, func()) {
	if c.redis == nil {
		return true, nil
	}
	ok, err := c.redis.SetNX(ctx, leaseKey, "1", c.leaseTTL).Result()
	if err != nil {
		c.log.Warn("scheduler_lease_acquire_failed", zap.Error(err))
		return false, nil
	}
	if !ok {
		return false, nil
	}
	return true, func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.redis.Del(releaseCtx, leaseKey).Err(); err != nil {
			c.log.Warn("scheduler_lease_release_failed", zap.Error(err))
		}
	}
}
