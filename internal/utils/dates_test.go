package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
)

func TestParseBusinessDate(t *testing.T) {
	date, err := utils.ParseBusinessDate("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC), date)

	for _, malformed := range []string{"", "28-08-2026", "2026/08/28", "2026-13-01", "hoy"} {
		_, err := utils.ParseBusinessDate(malformed)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", malformed)
	}
}

func TestTruncateToDate(t *testing.T) {
	buenosAires, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	// 01:30 UTC is still the previous evening in Buenos Aires (UTC-3).
	instant := time.Date(2026, time.August, 29, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC), utils.TruncateToDate(instant, buenosAires))
	assert.Equal(t, time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC), utils.TruncateToDate(instant, time.UTC))
}

func TestFormatBusinessDate(t *testing.T) {
	assert.Equal(t, "2026-08-28", utils.FormatBusinessDate(time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)))
}
