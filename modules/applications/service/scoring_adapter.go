package service

import (
	"context"

	"github.com/andreypavlenko/jobber/internal/platform/scoring"
	"github.com/andreypavlenko/jobber/modules/applications/ports"
)

// ScoringAdapter narrows internal/platform/scoring.Client to
// ports.ScoringClient, dropping the Features map this module has no use for.
type ScoringAdapter struct {
	client *scoring.Client
}

func NewScoringAdapter(client *scoring.Client) *ScoringAdapter {
	return &ScoringAdapter{client: client}
}

func (a *ScoringAdapter) ProcessResume(ctx context.Context, applicationID, resumeURL, jobDescription string) (*ports.ScoringResult, error) {
	result, err := a.client.ProcessResume(ctx, applicationID, resumeURL, jobDescription)
	if err != nil {
		return nil, err
	}
	return &ports.ScoringResult{FitScore: result.FitScore, Summary: result.Summary}, nil
}
