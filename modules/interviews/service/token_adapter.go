package service

import (
	"github.com/andreypavlenko/jobber/internal/platform/tokens"
)

// TokenAdapter narrows internal/platform/tokens.Service to ports.TokenIssuer
// so the engine depends on a string-based action, not the tokens package's
// own Action type.
type TokenAdapter struct {
	svc *tokens.Service
}

func NewTokenAdapter(svc *tokens.Service) *TokenAdapter {
	return &TokenAdapter{svc: svc}
}

func (a *TokenAdapter) Generate(interviewID string, action string) (string, error) {
	return a.svc.Generate(interviewID, tokens.Action(action))
}

func (a *TokenAdapter) Validate(interviewID, token, expectedAction string) error {
	_, err := a.svc.Validate(interviewID, token, tokens.Action(expectedAction))
	return err
}
