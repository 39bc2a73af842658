// Package tokens issues and validates the signed, expiring, single-purpose
// action tokens a candidate presents to accept or reject an interview invitation.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Action is the candidate action an interview token authorizes.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

const tokenType = "interview_action"

var (
	// ErrInvalidAction is returned when generating a token for an action other than accept/reject.
	ErrInvalidAction = errors.New("invalid token action")
	// ErrInvalidToken is returned for any validation failure; it never distinguishes
	// *why* validation failed to the caller, to avoid leaking which check failed.
	ErrInvalidToken = errors.New("link invalid or expired")
)

// Claims is the payload embedded in an interview-action token.
type Claims struct {
	InterviewID string `json:"interview_id"`
	Action      Action `json:"action"`
	Type        string `json:"type"`
	Nonce       string `json:"nonce"`
	jwt.RegisteredClaims
}

// Service generates and validates interview-action tokens. The signing key is
// read-only process-wide state, loaded once at construction.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New creates a Service with the given signing secret and token lifetime.
func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Generate issues a new signed token for the given interview and action.
// A random nonce is embedded so repeated calls for the same (interview, action)
// never collide, even though validation itself stays stateless.
func (s *Service) Generate(interviewID string, action Action) (string, error) {
	if action != ActionAccept && action != ActionReject {
		return "", ErrInvalidAction
	}

	now := time.Now()
	claims := &Claims{
		InterviewID: interviewID,
		Action:      action,
		Type:        tokenType,
		Nonce:       uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks a token's signature, type, expiry, and that it matches the
// expected interview and action. It is pure and deterministic aside from the
// clock.
func (s *Service) Validate(interviewID, tokenString string, expectedAction Action) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenType {
		return nil, ErrInvalidToken
	}
	if claims.InterviewID != interviewID {
		return nil, ErrInvalidToken
	}
	if claims.Action != expectedAction {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
