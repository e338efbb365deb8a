package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func noFallback(t *testing.T) func() (int64, error) {
	return func() (int64, error) {
		t.Fatal("fallback must not be called")
		return 0, nil
	}
}

func TestComputePlanFact(t *testing.T) {
	t.Run("derives vnereglement plan from summer and winter", func(t *testing.T) {
		row := &domain.PlanFactRow{
			MonthKey:         "2025-11",
			PlanLeto:         1000,
			PlanZima:         500,
			FactLeto:         700,
			FactZima:         600,
			FactVnereglament: int64Ptr(300),
			FactTotal:        int64Ptr(1600),
		}

		pf, err := computePlanFact("2025-11", row, noFallback(t))
		require.NoError(t, err)

		assert.Equal(t, int64(645), pf.PlanVnereglament)
		assert.Equal(t, int64(2145), pf.PlanTotal)
		assert.Equal(t, int64(1600), pf.FactTotal)
	})

	t.Run("rounds the derived plan half up", func(t *testing.T) {
		// 0.43 * 150 = 64.5 rounds to 65.
		row := &domain.PlanFactRow{
			MonthKey:         "2025-06",
			PlanLeto:         100,
			PlanZima:         50,
			FactVnereglament: int64Ptr(0),
			FactTotal:        int64Ptr(1),
		}

		pf, err := computePlanFact("2025-06", row, noFallback(t))
		require.NoError(t, err)

		assert.Equal(t, int64(65), pf.PlanVnereglament)
		assert.Equal(t, int64(215), pf.PlanTotal)
	})

	t.Run("falls back to itemized vnereglement fact only when absent", func(t *testing.T) {
		row := &domain.PlanFactRow{
			MonthKey: "2025-11",
			PlanLeto: 1000,
			PlanZima: 500,
			FactLeto: 700,
			FactZima: 600,
		}

		pf, err := computePlanFact("2025-11", row, func() (int64, error) {
			return 300, nil
		})
		require.NoError(t, err)

		assert.Equal(t, int64(300), pf.FactVnereglament)
		assert.Equal(t, int64(1600), pf.FactTotal)
	})

	t.Run("zero aggregate fact suppresses the fallback", func(t *testing.T) {
		row := &domain.PlanFactRow{
			MonthKey:         "2025-11",
			FactLeto:         10,
			FactZima:         20,
			FactVnereglament: int64Ptr(0),
		}

		pf, err := computePlanFact("2025-11", row, noFallback(t))
		require.NoError(t, err)

		assert.Equal(t, int64(0), pf.FactVnereglament)
		assert.Equal(t, int64(30), pf.FactTotal)
	})

	t.Run("zero stored total is replaced by the component sum", func(t *testing.T) {
		row := &domain.PlanFactRow{
			MonthKey:         "2025-11",
			FactLeto:         10,
			FactZima:         20,
			FactVnereglament: int64Ptr(5),
			FactTotal:        int64Ptr(0),
		}

		pf, err := computePlanFact("2025-11", row, noFallback(t))
		require.NoError(t, err)

		assert.Equal(t, int64(35), pf.FactTotal)
	})

	t.Run("missing month keeps zero bases but still runs the fallback", func(t *testing.T) {
		pf, err := computePlanFact("2025-01", nil, func() (int64, error) {
			return 300, nil
		})
		require.NoError(t, err)

		assert.Equal(t, "2025-01", pf.MonthKey)
		assert.Zero(t, pf.PlanTotal)
		assert.Equal(t, int64(300), pf.FactVnereglament)
		assert.Equal(t, int64(300), pf.FactTotal)
	})

	t.Run("missing month with no itemized facts is all zero", func(t *testing.T) {
		pf, err := computePlanFact("2025-01", nil, func() (int64, error) {
			return 0, nil
		})
		require.NoError(t, err)

		assert.Zero(t, pf.FactVnereglament)
		assert.Zero(t, pf.FactTotal)
	})

	t.Run("fallback errors propagate", func(t *testing.T) {
		row := &domain.PlanFactRow{MonthKey: "2025-11"}
		wantErr := errors.New("itemized facts unavailable")

		_, err := computePlanFact("2025-11", row, func() (int64, error) {
			return 0, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(65), roundHalfUp(64.5))
	assert.Equal(t, int64(64), roundHalfUp(64.49))
	assert.Equal(t, int64(645), roundHalfUp(0.43*1500))
	assert.Equal(t, int64(0), roundHalfUp(0))
}
