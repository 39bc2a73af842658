package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/andreypavlenko/jobber/modules/negotiation/model"
)

// ContentGenerator is the narrow slice of internal/platform/llm.Client this
// package depends on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// LLM asks the model to emit a fixed JSON shape describing the candidate's
// availability, then decodes it.
type LLM struct {
	generator ContentGenerator
}

func NewLLM(generator ContentGenerator) *LLM {
	return &LLM{generator: generator}
}

type llmAvailability struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	PreferredDays  []string `json:"preferred_days"`
	PreferredStart *int     `json:"preferred_start_hour"`
	PreferredEnd   *int     `json:"preferred_end_hour"`
}

func (l *LLM) Parse(ctx context.Context, freeText string) (*model.Availability, error) {
	prompt := fmt.Sprintf(`Extract interview availability from this candidate message as JSON with keys
start_date, end_date (YYYY-MM-DD), preferred_days (array of weekday names, optional),
preferred_start_hour, preferred_end_hour (0-23, optional). Message: %q
Respond with ONLY the JSON object.`, freeText)

	raw, err := l.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed llmAvailability
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("llm parser: decode response: %w", err)
	}

	start, err := time.Parse("2006-01-02", parsed.StartDate)
	if err != nil {
		return nil, fmt.Errorf("llm parser: invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", parsed.EndDate)
	if err != nil {
		return nil, fmt.Errorf("llm parser: invalid end_date: %w", err)
	}

	avail := &model.Availability{StartDate: start, EndDate: end}
	for _, name := range parsed.PreferredDays {
		if wd, ok := weekdaysByName[strings.ToLower(name)]; ok {
			avail.PreferredDays = append(avail.PreferredDays, wd)
		}
	}
	if parsed.PreferredStart != nil && parsed.PreferredEnd != nil {
		avail.PreferredHours = &model.HourRange{StartHour: *parsed.PreferredStart, EndHour: *parsed.PreferredEnd}
	}

	return avail, nil
}
