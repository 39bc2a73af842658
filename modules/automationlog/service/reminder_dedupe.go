package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/automationlog/model"
)

// ReminderDedupeAdapter answers the scheduler's "has this interview already
// been reminded" question off the automation log, so the reminder sweep
// doesn't need its own tracking table.
type ReminderDedupeAdapter struct {
	sink *Sink
}

func NewReminderDedupeAdapter(sink *Sink) *ReminderDedupeAdapter {
	return &ReminderDedupeAdapter{sink: sink}
}

func (a *ReminderDedupeAdapter) HasReminded(ctx context.Context, interviewID string) (bool, error) {
	logs, err := a.sink.repo.Query(ctx, model.QueryFilter{
		ActionType:  model.ActionReminderSent,
		InterviewID: interviewID,
		Limit:       1,
	})
	if err != nil {
		return false, err
	}
	return len(logs) > 0, nil
}
