// Package email wraps the Resend API as the hiring orchestrator's email
// service collaborator: queue(to, template, data) -> {ok}.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/retry"
	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Template names the five fixed Resend templates the orchestrator sends.
type Template string

const (
	TemplateInvitation    Template = "invitation"
	TemplateSlotSelection Template = "slot_selection"
	TemplateConfirmation  Template = "confirmation"
	TemplateReminder      Template = "reminder"
	TemplatePromotion     Template = "promotion"
)

// Client implements modules/interviews/ports.EmailSender over Resend.
type Client struct {
	api       *resend.Client
	from      string
	timeout   time.Duration
	log       *logger.Logger
	baseURL   string
}

func NewClient(apiKey, fromEmail, baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		api:     resend.NewClient(apiKey),
		from:    fromEmail,
		timeout: timeout,
		log:     log,
		baseURL: baseURL,
	}
}

// queue sends one email with bounded retry. A persistent failure is logged
// and returned to the caller, who treats it as a non-fatal, best-effort side
// effect.
func (c *Client) queue(ctx context.Context, to, subject, html string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := retry.Do(ctx, func(ctx context.Context) error {
		_, sendErr := c.api.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    c.from,
			To:      []string{to},
			Subject: subject,
			Html:    html,
		})
		return sendErr
	})
	if err != nil {
		c.log.Warn("email_send_failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
	return err
}

func (c *Client) SendInvitation(ctx context.Context, interview *model.Interview, acceptToken, rejectToken string) error {
	acceptURL := fmt.Sprintf("%s/api/v1/interview/accept/%s/%s", c.baseURL, interview.ID, acceptToken)
	rejectURL := fmt.Sprintf("%s/api/v1/interview/reject/%s/%s", c.baseURL, interview.ID, rejectToken)
	html := fmt.Sprintf(
		"<p>You've been invited to interview.</p><p><a href=%q>Accept</a> | <a href=%q>Decline</a></p>",
		acceptURL, rejectURL,
	)
	return c.queue(ctx, interview.CandidateID, "Interview invitation", html)
}

func (c *Client) SendSlotSelection(ctx context.Context, interview *model.Interview) error {
	html := fmt.Sprintf("<p>Pick an interview slot within 24 hours: %s/interviews/%s/slots</p>", c.baseURL, interview.ID)
	return c.queue(ctx, interview.CandidateID, "Choose your interview slot", html)
}

func (c *Client) SendConfirmation(ctx context.Context, interview *model.Interview) error {
	html := "<p>Your interview is confirmed.</p>"
	if interview.ScheduledTime != nil {
		html = fmt.Sprintf("<p>Your interview is confirmed for %s.</p>", interview.ScheduledTime.Format(time.RFC1123))
	}
	if err := c.queue(ctx, interview.CandidateID, "Interview confirmed", html); err != nil {
		return err
	}
	return c.queue(ctx, interview.RecruiterID, "Interview confirmed", html)
}

func (c *Client) SendReminder(ctx context.Context, interview *model.Interview) error {
	html := "<p>Reminder: your interview is tomorrow.</p>"
	if interview.ScheduledTime != nil {
		html = fmt.Sprintf("<p>Reminder: your interview is scheduled for %s.</p>", interview.ScheduledTime.Format(time.RFC1123))
	}
	if err := c.queue(ctx, interview.CandidateID, "Interview reminder", html); err != nil {
		return err
	}
	return c.queue(ctx, interview.RecruiterID, "Interview reminder", html)
}

func (c *Client) SendNegotiationEscalation(ctx context.Context, interview *model.Interview) error {
	html := fmt.Sprintf("<p>Negotiation for interview %s ran out of rounds without a matching slot.</p>", interview.ID)
	return c.queue(ctx, interview.RecruiterID, "Negotiation needs your attention", html)
}

// SendPromotion notifies a newly-promoted buffer candidate, mirroring the
// same queue path the other templates use.
func (c *Client) SendPromotion(ctx context.Context, candidateID string) error {
	html := "<p>You've been moved from the buffer into the shortlist for this role.</p>"
	return c.queue(ctx, candidateID, "You're shortlisted", html)
}
