package service

import (
	"context"

	"github.com/andreypavlenko/jobber/modules/interviews/ports"
)

// NegotiationNotifier adapts this module's repository and email sender to
// negotiation/ports.RecruiterNotifier, so modules/negotiation
// never imports modules/interviews.
type NegotiationNotifier struct {
	repo  ports.Repository
	email ports.EmailSender
}

func NewNegotiationNotifier(repo ports.Repository, email ports.EmailSender) *NegotiationNotifier {
	return &NegotiationNotifier{repo: repo, email: email}
}

// NotifyEscalation implements negotiation/ports.RecruiterNotifier.
func (n *NegotiationNotifier) NotifyEscalation(ctx context.Context, interviewID string) error {
	interview, err := n.repo.GetByID(ctx, interviewID)
	if err != nil {
		return err
	}
	return n.email.SendNegotiationEscalation(ctx, interview)
}
