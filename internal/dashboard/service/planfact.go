package service

import (
	"math"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/domain"
)

// vnereglamentPlanShare is the business constant behind the off-schedule
// plan: it is never budgeted independently and is always derived as 43%
// of the summer and winter plans combined.
const vnereglamentPlanShare = 0.43

// computePlanFact turns a raw monthly aggregate into the complete KPI
// record. A nil row means the aggregate never materialized: bases are
// zero but the supplementary fact fields stay unknown, so the itemized
// fallback still runs. vnerFallback supplies fact_vnereglament from
// itemized rows and is consulted only when the aggregate does not carry
// the value.
func computePlanFact(monthKey string, row *domain.PlanFactRow, vnerFallback func() (int64, error)) (domain.PlanFact, error) {
	if row == nil {
		row = &domain.PlanFactRow{MonthKey: monthKey}
	}

	planVner := roundHalfUp(vnereglamentPlanShare * float64(row.PlanLeto+row.PlanZima))
	planTotal := row.PlanLeto + row.PlanZima + planVner

	factVner := int64(0)
	if row.FactVnereglament != nil {
		factVner = *row.FactVnereglament
	} else if vnerFallback != nil {
		sum, err := vnerFallback()
		if err != nil {
			return domain.PlanFact{}, err
		}
		factVner = sum
	}

	factTotal := row.FactLeto + row.FactZima + factVner
	if row.FactTotal != nil && *row.FactTotal != 0 {
		factTotal = *row.FactTotal
	}

	key := row.MonthKey
	if key == "" {
		key = monthKey
	}

	return domain.PlanFact{
		MonthKey:         key,
		PlanLeto:         row.PlanLeto,
		PlanZima:         row.PlanZima,
		PlanVnereglament: planVner,
		PlanTotal:        planTotal,
		FactLeto:         row.FactLeto,
		FactZima:         row.FactZima,
		FactVnereglament: factVner,
		FactTotal:        factTotal,
	}, nil
}

// roundHalfUp rounds positive amounts with halves going up, matching
// the upstream aggregation rule.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
