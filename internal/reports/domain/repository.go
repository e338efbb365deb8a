package domain

import (
	"context"
	"time"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

// ReportRow is the raw monthly fact row behind the report.
type ReportRow struct {
	MonthStart     string  `gorm:"column:month_start"`
	SmetaCode      string  `gorm:"column:smeta_code"`
	Description    string  `gorm:"column:description"`
	Unit           *string `gorm:"column:unit"`
	FactVolumeDone float64 `gorm:"column:fact_volume_done"`
	FactAmountDone float64 `gorm:"column:fact_amount_done"`
}

type Repository interface {
	MonthlyReportRows(ctx context.Context, month period.Month) ([]ReportRow, error)
	LastLoadedAt(ctx context.Context) (*time.Time, error)
}
