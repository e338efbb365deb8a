package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) MonthlyReportRows(ctx context.Context, month period.Month) ([]domain.ReportRow, error) {
	var rows []domain.ReportRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT to_char(month_start, 'YYYY-MM-DD') AS month_start,
		        COALESCE(smeta_code, '') AS smeta_code,
		        COALESCE(description, '') AS description,
		        unit,
		        COALESCE(fact_volume_done, 0)::float AS fact_volume_done,
		        COALESCE(fact_amount_done, 0)::float AS fact_amount_done
		 FROM skpdi_fact_monthly_total
		 WHERE month_start = ?
		 ORDER BY smeta_code, fact_amount_done DESC`,
		month.Start(),
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) LastLoadedAt(ctx context.Context) (*time.Time, error) {
	var row struct {
		LoadedAt *time.Time `gorm:"column:loaded_at"`
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT MAX(loaded_at) AS loaded_at FROM skpdi_fact_agg`,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.LoadedAt, nil
}
