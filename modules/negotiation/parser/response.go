package parser

import (
	"context"
	"fmt"

	"github.com/andreypavlenko/jobber/modules/negotiation/model"
)

// Template drafts a fixed, non-LLM no-match response.
type Template struct{}

func NewTemplate() *Template { return &Template{} }

func (t *Template) GenerateNoMatchResponse(ctx context.Context, availability *model.Availability) (string, error) {
	return "None of your suggested times match our current openings. Could you share a few more options, " +
		"including specific days and times that work for you?", nil
}

// LLMResponder drafts the no-match message with the LLM, grounding it in the
// candidate's parsed constraints so the reply references their own stated
// availability.
type LLMResponder struct {
	generator ContentGenerator
}

func NewLLMResponder(generator ContentGenerator) *LLMResponder {
	return &LLMResponder{generator: generator}
}

func (l *LLMResponder) GenerateNoMatchResponse(ctx context.Context, availability *model.Availability) (string, error) {
	prompt := fmt.Sprintf(`Write a brief, friendly reply (2-3 sentences) to a job candidate telling them
none of the recruiter's open interview slots overlap with the availability they described
(roughly %s to %s). Ask them for a few alternative days or times. Do not mention dates outside that range.`,
		availability.StartDate.Format("Jan 2"), availability.EndDate.Format("Jan 2"))

	return l.generator.GenerateContent(ctx, prompt)
}
