package credit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nwachie/skillswap/backend/internal/domain/credit"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

func TestTransferAmount(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int64
	}{
		{"one hour is exactly 100 credits", time.Hour, 100},
		{"half hour", 30 * time.Minute, 50},
		{"thirty six seconds is one credit", 36 * time.Second, 1},
		{"just under one credit floors to zero", 35 * time.Second, 0},
		{"zero duration", 0, 0},
		{"two and a half hours", 150 * time.Minute, 250},
		{"sub-credit remainder is dropped", time.Hour + 35*time.Second, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := credit.TransferAmount(base, base.Add(tt.elapsed))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransferAmount_Deterministic(t *testing.T) {
	start := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	end := start.Add(97 * time.Minute)

	first, err := credit.TransferAmount(start, end)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := credit.TransferAmount(start, end)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTransferAmount_Preconditions(t *testing.T) {
	now := time.Now()

	t.Run("zero start date", func(t *testing.T) {
		_, err := credit.TransferAmount(time.Time{}, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePrecondition))
	})

	t.Run("zero end date", func(t *testing.T) {
		_, err := credit.TransferAmount(now, time.Time{})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePrecondition))
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := credit.TransferAmount(now, now.Add(-time.Second))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePrecondition))
	})
}
