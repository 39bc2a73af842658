package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func TestLLM_Parse(t *testing.T) {
	t.Run("decodes a well-formed JSON response", func(t *testing.T) {
		gen := fakeGenerator{response: `{"start_date":"2026-08-01","end_date":"2026-08-14","preferred_days":["monday","friday"],"preferred_start_hour":9,"preferred_end_hour":12}`}
		p := NewLLM(gen)

		avail, err := p.Parse(context.Background(), "I can do mornings the first two weeks of August")

		require.NoError(t, err)
		assert.Equal(t, "2026-08-01", avail.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2026-08-14", avail.EndDate.Format("2006-01-02"))
		require.NotNil(t, avail.PreferredHours)
		assert.Equal(t, 9, avail.PreferredHours.StartHour)
		assert.Equal(t, 12, avail.PreferredHours.EndHour)
	})

	t.Run("returns an error when the response isn't valid JSON", func(t *testing.T) {
		gen := fakeGenerator{response: "sorry, I can't help with that"}
		p := NewLLM(gen)

		_, err := p.Parse(context.Background(), "whatever works")

		assert.Error(t, err)
	})

	t.Run("propagates the generator's error", func(t *testing.T) {
		gen := fakeGenerator{err: assert.AnError}
		p := NewLLM(gen)

		_, err := p.Parse(context.Background(), "whatever works")

		assert.ErrorIs(t, err, assert.AnError)
	})
}
