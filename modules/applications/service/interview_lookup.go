package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/applications/model"
	"github.com/andreypavlenko/jobber/modules/applications/ports"
)

// InterviewLookupAdapter implements interviews/ports.ApplicationLookup over
// the applications repository, so modules/interviews never imports
// modules/applications directly.
type InterviewLookupAdapter struct {
	repo ports.ApplicationRepository
}

func NewInterviewLookupAdapter(repo ports.ApplicationRepository) *InterviewLookupAdapter {
	return &InterviewLookupAdapter{repo: repo}
}

// GetInterviewContext resolves the job, candidate and rank an interview
// needs from an application id. There is no standalone candidate record in
// this system; the application
// id doubles as the candidate id.
func (a *InterviewLookupAdapter) GetInterviewContext(ctx context.Context, applicationID string) (jobID, candidateID string, rankAtTime int, err error) {
	app, err := a.repo.GetByIDUnscoped(ctx, applicationID)
	if err != nil {
		return "", "", 0, err
	}
	rank := 0
	if app.Rank != nil {
		rank = *app.Rank
	}
	return app.JobID, app.ID, rank, nil
}

// MarkRejected sets an application's shortlist_status to rejected when its
// interview ends in an expired invitation, a rejection, or a no-show,
// pulling it out of the shortlist/buffer pipeline. This is distinct from the
// application's lifecycle status (active/on_hold/rejected/offer/archived),
// which the recruiter manages separately.
func (a *InterviewLookupAdapter) MarkRejected(ctx context.Context, applicationID string) error {
	return a.repo.UpdateShortlistStatusUnscoped(ctx, applicationID, string(model.ShortlistRejected))
}
