package domain

import (
	"context"
	"time"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

// PlanFactRow is the raw monthly aggregate as stored upstream. The
// nullable fields distinguish "absent" from zero: fact_vnereglament is
// derived from itemized rows when the aggregate never materialized.
type PlanFactRow struct {
	MonthKey         string `gorm:"column:month_key"`
	PlanLeto         int64  `gorm:"column:plan_leto"`
	PlanZima         int64  `gorm:"column:plan_zima"`
	FactLeto         int64  `gorm:"column:fact_leto"`
	FactZima         int64  `gorm:"column:fact_zima"`
	FactVnereglament *int64 `gorm:"column:fact_vnereglament"`
	FactTotal        *int64 `gorm:"column:fact_total"`
}

type MonthlyItemRow struct {
	MonthStart    string  `gorm:"column:month_start"`
	Smeta         string  `gorm:"column:smeta"`
	WorkName      string  `gorm:"column:work_name"`
	PlannedAmount float64 `gorm:"column:planned_amount"`
	FactAmount    float64 `gorm:"column:fact_amount"`
}

type PlanRow struct {
	Description string `gorm:"column:description"`
	Plan        int64  `gorm:"column:plan"`
}

type FactRow struct {
	Description string `gorm:"column:description"`
	Fact        int64  `gorm:"column:fact"`
}

type DailyPointRow struct {
	Date   string  `gorm:"column:date"`
	Volume int64   `gorm:"column:volume"`
	Unit   *string `gorm:"column:unit"`
	Amount int64   `gorm:"column:amount"`
}

type RevenuePointRow struct {
	Date   string `gorm:"column:date"`
	Amount int64  `gorm:"column:amount"`
}

type DailyWorkItemRow struct {
	Description string  `gorm:"column:description"`
	Unit        *string `gorm:"column:unit"`
	Volume      int64   `gorm:"column:volume"`
	Amount      int64   `gorm:"column:amount"`
}

type TypeOfWorkFactRow struct {
	TypeOfWork string `gorm:"column:type_of_work"`
	Amount     int64  `gorm:"column:amount"`
}

// Repository is the narrow fetch interface over the reporting views.
// Row order is defined by each query; callers never rely on column
// order or field presence beyond what the row structs declare.
type Repository interface {
	MonthsFromPlanVsFact(ctx context.Context) ([]string, error)
	MonthsFromPlanFactBackend(ctx context.Context) ([]string, error)
	MonthsFromDailyFacts(ctx context.Context) ([]string, error)

	PlanFactMonth(ctx context.Context, month period.Month) (*PlanFactRow, error)
	SumFactVnereglament(ctx context.Context, month period.Month) (int64, error)
	ContractAmountSum(ctx context.Context) (int64, error)
	TotalFactAllMonths(ctx context.Context) (int64, error)

	MonthlyItems(ctx context.Context, month period.Month) ([]MonthlyItemRow, error)
	PlanRowsBySmeta(ctx context.Context, month period.Month, code string) ([]PlanRow, error)
	FactRowsBySmeta(ctx context.Context, month period.Month, codes []string) ([]FactRow, error)
	DescriptionDailyRows(ctx context.Context, month period.Month, description string, codes []string) ([]DailyPointRow, error)
	DailyRevenueRows(ctx context.Context, month period.Month) ([]RevenuePointRow, error)
	DailyRows(ctx context.Context, date string) ([]DailyWorkItemRow, error)
	MonthlyDates(ctx context.Context, month period.Month) ([]string, error)
	FactByTypeOfWork(ctx context.Context, month period.Month) ([]TypeOfWorkFactRow, error)

	LastLoadedAt(ctx context.Context) (*time.Time, error)
}
