// Package risk calls the external no-show risk model service, following the same small HTTP-collaborator shape as
// internal/platform/scoring.
package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/retry"
	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"go.uber.org/zap"
)

// Client implements modules/interviews/ports.RiskScorer over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}, timeout: timeout, log: log}
}

type analyzeRiskRequest struct {
	InterviewID string `json:"interview_id"`
	CandidateID string `json:"candidate_id"`
}

type analyzeRiskResponse struct {
	NoShowRisk float64 `json:"no_show_risk"`
	RiskLevel  string  `json:"risk_level"`
}

// Score requests a no-show probability for a confirmed interview. A
// persistent failure after the per-call timeout and bounded retry is
// returned to the caller, which leaves the interview's previous risk value
// untouched.
func (c *Client) Score(ctx context.Context, interview *model.Interview) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(analyzeRiskRequest{InterviewID: interview.ID, CandidateID: interview.CandidateID})
	if err != nil {
		return 0, err
	}

	var result analyzeRiskResponse
	err = retry.Do(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-risk", bytes.NewReader(body))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, callErr := c.http.Do(req)
		if callErr != nil {
			return callErr
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("risk service: %s", resp.Status)
		}
		if resp.StatusCode >= 400 {
			// Permanent external error: not retried.
			return &permanentError{status: resp.Status}
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		c.log.Warn("risk_score_failed", zap.String("interview_id", interview.ID), zap.Error(err))
		return 0, err
	}
	return result.NoShowRisk, nil
}

type permanentError struct{ status string }

func (e *permanentError) Error() string  { return "risk service: " + e.status }
func (e *permanentError) Permanent() bool { return true }
