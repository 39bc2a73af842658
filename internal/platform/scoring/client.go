// Package scoring calls the external resume-scoring service, following the same small
// config-driven HTTP collaborator shape as internal/platform/storage.S3Client.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/retry"
	"go.uber.org/zap"
)

// Client calls the scoring service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}, timeout: timeout, log: log}
}

type processResumeRequest struct {
	ApplicationID  string `json:"application_id"`
	ResumeURL      string `json:"resume_url"`
	JobDescription string `json:"job_description"`
}

// Result is the scoring service's response.
type Result struct {
	FitScore float64                `json:"fit_score"`
	Summary  string                 `json:"summary"`
	Features map[string]interface{} `json:"features"`
}

// ProcessResume scores one application's resume against a job description.
// On any failure (timeout exhausted, 4xx/5xx), the caller's contract is
// "leave fit_score=0, ai_processed=true with an error log" —
// this client just returns the error; the caller applies that fallback.
func (c *Client) ProcessResume(ctx context.Context, applicationID, resumeURL, jobDescription string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(processResumeRequest{
		ApplicationID:  applicationID,
		ResumeURL:      resumeURL,
		JobDescription: jobDescription,
	})
	if err != nil {
		return nil, err
	}

	var result Result
	err = retry.Do(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process-resume", bytes.NewReader(body))
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
			return fmt.Errorf("scoring service: %s", resp.Status)
		}
		if resp.StatusCode >= 400 {
			return &permanentError{status: resp.Status}
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		c.log.Error("resume_scoring_failed", zap.String("application_id", applicationID), zap.Error(err))
		return nil, err
	}
	return &result, nil
}

type permanentError struct{ status string }

func (e *permanentError) Error() string   { return "scoring service: " + e.status }
func (e *permanentError) Permanent() bool { return true }
