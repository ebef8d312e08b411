package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("calendar day in UTC", func(t *testing.T) {
		got, err := ParseDate("from", " 2024-02-29 ")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("blank is the zero time", func(t *testing.T) {
		got, err := ParseDate("from", "  ")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("bad format names the field", func(t *testing.T) {
		_, err := ParseDate("transaction_date", "29/02/2024")
		require.Error(t, err)
		var derr *DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, CodeValidation, derr.Code)
		assert.Equal(t, "transaction_date", derr.Field)
	})
}
