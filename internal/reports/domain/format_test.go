package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

func TestFormatMonthRussian(t *testing.T) {
	m, err := period.NormalizeMonth("2025-11")
	require.NoError(t, err)
	assert.Equal(t, "Ноябрь 2025", FormatMonthRussian(m))

	m, err = period.NormalizeMonth("2026-01")
	require.NoError(t, err)
	assert.Equal(t, "Январь 2026", FormatMonthRussian(m))
}

func TestFormatDateRussian(t *testing.T) {
	assert.Equal(t, "27 ноября 2025", FormatDateRussian(time.Date(2025, 11, 27, 5, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1 марта 2026", FormatDateRussian(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1 234 567.89", FormatAmount(1234567.89))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "999.50", FormatAmount(999.5))
	assert.Equal(t, "-12 000.00", FormatAmount(-12000))
}
