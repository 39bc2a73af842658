package service

import "context"

// JobTrigger adapts Engine.AutoShortlist to modules/jobs/ports.ShortlistTrigger
//, so modules/jobs never imports this package directly.
type JobTrigger struct {
	engine *Engine
}

func NewJobTrigger(engine *Engine) *JobTrigger {
	return &JobTrigger{engine: engine}
}

// TriggerAutoShortlist implements modules/jobs/ports.ShortlistTrigger.
func (t *JobTrigger) TriggerAutoShortlist(ctx context.Context, jobID string) error {
	_, err := t.engine.AutoShortlist(ctx, jobID)
	return err
}

// InterviewCallback adapts Engine.PromoteFromBuffer to the single-error
// return modules/interviews/ports.ShortlistingCallback expects, discarding
// the promotion detail that caller doesn't need.
type InterviewCallback struct {
	engine *Engine
}

func NewInterviewCallback(engine *Engine) *InterviewCallback {
	return &InterviewCallback{engine: engine}
}

// PromoteFromBuffer implements modules/interviews/ports.ShortlistingCallback.
func (c *InterviewCallback) PromoteFromBuffer(ctx context.Context, jobID string, vacatedRank int) error {
	_, err := c.engine.PromoteFromBuffer(ctx, jobID, vacatedRank)
	return err
}
