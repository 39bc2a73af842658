// Package service provides the append-only automation event sink. Writes
// must never fail the caller: callers are engines mid-way
// through a shortlisting cycle, an invitation send, or a negotiation round,
// and a logging hiccup is not their problem.
package service

import (
	"context"

	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/modules/automationlog/model"
	"github.com/andreypavlenko/jobber/modules/automationlog/ports"
	"go.uber.org/zap"
)

type Sink struct {
	repo ports.Repository
	log  *logger.Logger
}

func NewSink(repo ports.Repository, log *logger.Logger) *Sink {
	return &Sink{repo: repo, log: log}
}

// Append records an event. On storage failure it falls back to a structured
// stderr line via the platform logger and swallows the error.
func (s *Sink) Append(ctx context.Context, jobID *string, actionType model.ActionType, triggerSource model.TriggerSource, actor *string, details map[string]interface{}) {
	entry := &model.AutomationLog{
		JobID:         jobID,
		ActionType:    actionType,
		TriggerSource: triggerSource,
		Actor:         actor,
		Details:       details,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.log.Error("automation_log_append_failed",
			zap.String("action_type", string(actionType)),
			zap.String("trigger_source", string(triggerSource)),
			zap.Any("details", details),
			zap.Error(err),
		)
	}
}

func (s *Sink) Query(ctx context.Context, filter model.QueryFilter) ([]*model.AutomationLogDTO, error) {
	logs, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.AutomationLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = l.ToDTO()
	}
	return dtos, nil
}

func (s *Sink) CountByActionType(ctx context.Context, jobID string) ([]model.ActionTypeCount, error) {
	return s.repo.CountByActionType(ctx, jobID)
}

func (s *Sink) CountByTriggerSource(ctx context.Context, jobID string) ([]model.TriggerSourceCount, error) {
	return s.repo.CountByTriggerSource(ctx, jobID)
}
