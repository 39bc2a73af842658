package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	svc := New("signing-secret-32-characters!!!", 7*24*time.Hour)

	t.Run("validates a freshly generated accept token", func(t *testing.T) {
		token, err := svc.Generate("interview-1", ActionAccept)
		require.NoError(t, err)

		claims, err := svc.Validate("interview-1", token, ActionAccept)

		require.NoError(t, err)
		assert.Equal(t, "interview-1", claims.InterviewID)
		assert.Equal(t, ActionAccept, claims.Action)
	})

	t.Run("rejects invalid action at generation", func(t *testing.T) {
		_, err := svc.Generate("interview-1", Action("maybe"))

		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("rejects token presented for a different interview", func(t *testing.T) {
		token, err := svc.Generate("interview-1", ActionAccept)
		require.NoError(t, err)

		_, err = svc.Validate("interview-2", token, ActionAccept)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token validated against the wrong expected action", func(t *testing.T) {
		token, err := svc.Generate("interview-1", ActionAccept)
		require.NoError(t, err)

		_, err = svc.Validate("interview-1", token, ActionReject)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		shortLived := New("signing-secret-32-characters!!!", -1*time.Second)
		token, err := shortLived.Generate("interview-1", ActionAccept)
		require.NoError(t, err)

		_, err = svc.Validate("interview-1", token, ActionAccept)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := svc.Validate("interview-1", "not-a-token", ActionAccept)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("two tokens for the same interview and action differ", func(t *testing.T) {
		tokenA, err := svc.Generate("interview-1", ActionAccept)
		require.NoError(t, err)
		tokenB, err := svc.Generate("interview-1", ActionAccept)
		require.NoError(t, err)

		assert.NotEqual(t, tokenA, tokenB)
	})
}
