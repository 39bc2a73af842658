package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/featureflags/model"
)

// StringAdapter narrows Resolver to the plain-string IsEnabled(ctx, flag,
// jobID) signature that modules/shortlisting, modules/interviews, and
// modules/negotiation each declare independently in their own ports
// packages, so none of them needs to import this package's model.Name type.
type StringAdapter struct {
	resolver *Resolver
}

func NewStringAdapter(resolver *Resolver) *StringAdapter {
	return &StringAdapter{resolver: resolver}
}

func (a *StringAdapter) IsEnabled(ctx context.Context, flag string, jobID string) bool {
	return a.resolver.IsEnabled(ctx, model.Name(flag), jobID)
}
