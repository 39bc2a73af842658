package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/automationlog/model"
)

// ActivityLoggerAdapter lets a single *Sink satisfy the ActivityLogger port
// declared independently (and structurally identically) in shortlisting,
// interviews, and negotiation's ports packages. Those packages pass
// actionType/triggerSource as plain strings so they don't need to import
// automationlog's model; this adapter is the one place that re-attaches
// the named types before delegating to Sink.Append.
type ActivityLoggerAdapter struct {
	sink *Sink
}

func NewActivityLoggerAdapter(sink *Sink) *ActivityLoggerAdapter {
	return &ActivityLoggerAdapter{sink: sink}
}

func (a *ActivityLoggerAdapter) Append(ctx context.Context, jobID *string, actionType, triggerSource string, actor *string, details map[string]interface{}) {
	a.sink.Append(ctx, jobID, model.ActionType(actionType), model.TriggerSource(triggerSource), actor, details)
}
