package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/domain"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

// The reporting views are refreshed by an external ETL:
// mv_plan_vs_fact_monthly_ids (itemized plan vs fact per month),
// mv_plan_fact_monthly_backend_ids (monthly aggregates) and
// mv_fact_daily_amounts (approved daily facts with money).
const statusApproved = "Рассмотрено"

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) MonthsFromPlanVsFact(ctx context.Context) ([]string, error) {
	var months []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT DISTINCT to_char(month_start, 'YYYY-MM') AS month
		 FROM mv_plan_vs_fact_monthly_ids
		 ORDER BY month DESC`,
	).Scan(&months).Error
	return months, err
}

func (r *repo) MonthsFromPlanFactBackend(ctx context.Context) ([]string, error) {
	var months []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT DISTINCT month_key AS month
		 FROM mv_plan_fact_monthly_backend_ids
		 ORDER BY month DESC`,
	).Scan(&months).Error
	return months, err
}

func (r *repo) MonthsFromDailyFacts(ctx context.Context) ([]string, error) {
	var months []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT DISTINCT to_char(date_done, 'YYYY-MM') AS month
		 FROM mv_fact_daily_amounts
		 WHERE status = ?
		 ORDER BY month DESC`,
		statusApproved,
	).Scan(&months).Error
	return months, err
}

func (r *repo) PlanFactMonth(ctx context.Context, month period.Month) (*domain.PlanFactRow, error) {
	var row domain.PlanFactRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT month_key,
		        COALESCE(plan_leto, 0)::bigint AS plan_leto,
		        COALESCE(plan_zima, 0)::bigint AS plan_zima,
		        COALESCE(fact_leto, 0)::bigint AS fact_leto,
		        COALESCE(fact_zima, 0)::bigint AS fact_zima,
		        fact_vnereglament::bigint AS fact_vnereglament,
		        fact_total::bigint AS fact_total
		 FROM mv_plan_fact_monthly_backend_ids
		 WHERE month_key = ?`,
		month.String(),
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.MonthKey == "" {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) SumFactVnereglament(ctx context.Context, month period.Month) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(fact_amount_done), 0)::bigint AS s
		 FROM mv_plan_vs_fact_monthly_ids
		 WHERE month_start >= ?
		   AND month_start < ? + INTERVAL '1 month'
		   AND smeta_code IN ?`,
		month.Start(), month.Start(), domain.VnereglementCodes(),
	).Scan(&sum).Error
	return sum, err
}

func (r *repo) ContractAmountSum(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(contract_amount), 0)::bigint AS sum
		 FROM podolsk_mad_2025_contract_amount`,
	).Scan(&sum).Error
	return sum, err
}

func (r *repo) TotalFactAllMonths(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(fact_total), 0)::bigint AS sum
		 FROM mv_plan_fact_monthly_backend_ids`,
	).Scan(&sum).Error
	return sum, err
}

func (r *repo) MonthlyItems(ctx context.Context, month period.Month) ([]domain.MonthlyItemRow, error) {
	var rows []domain.MonthlyItemRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT to_char(month_start, 'YYYY-MM-DD') AS month_start,
		        smeta_code AS smeta,
		        description AS work_name,
		        COALESCE(planned_amount, 0)::float AS planned_amount,
		        COALESCE(fact_amount_done, 0)::float AS fact_amount
		 FROM mv_plan_vs_fact_monthly_ids
		 WHERE month_start >= ?
		   AND month_start < ? + INTERVAL '1 month'
		 ORDER BY planned_amount DESC`,
		month.Start(), month.Start(),
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) PlanRowsBySmeta(ctx context.Context, month period.Month, code string) ([]domain.PlanRow, error) {
	var rows []domain.PlanRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT description, COALESCE(SUM(planned_amount), 0)::bigint AS plan
		 FROM mv_plan_vs_fact_monthly_ids
		 WHERE month_start >= ?
		   AND month_start < ? + INTERVAL '1 month'
		   AND smeta_code = ?
		 GROUP BY description`,
		month.Start(), month.Start(), code,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) FactRowsBySmeta(ctx context.Context, month period.Month, codes []string) ([]domain.FactRow, error) {
	var rows []domain.FactRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT description, COALESCE(SUM(fact_amount_done), 0)::bigint AS fact
		 FROM mv_plan_vs_fact_monthly_ids
		 WHERE month_start >= ?
		   AND month_start < ? + INTERVAL '1 month'
		   AND smeta_code IN ?
		 GROUP BY description`,
		month.Start(), month.Start(), codes,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) DescriptionDailyRows(ctx context.Context, month period.Month, description string, codes []string) ([]domain.DailyPointRow, error) {
	var rows []domain.DailyPointRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT to_char(date_done, 'YYYY-MM-DD') AS date,
		        COALESCE(SUM(total_volume), 0)::bigint AS volume,
		        MIN(unit) AS unit,
		        COALESCE(SUM(total_amount), 0)::bigint AS amount
		 FROM mv_fact_daily_amounts
		 WHERE date_done >= ?
		   AND date_done < ? + INTERVAL '1 month'
		   AND status = ?
		   AND description = ?
		   AND smeta_code IN ?
		 GROUP BY date_done
		 ORDER BY date_done`,
		month.Start(), month.Start(), statusApproved, description, codes,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) DailyRevenueRows(ctx context.Context, month period.Month) ([]domain.RevenuePointRow, error) {
	var rows []domain.RevenuePointRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT to_char(date_done, 'YYYY-MM-DD') AS date,
		        COALESCE(SUM(total_amount), 0)::bigint AS amount
		 FROM mv_fact_daily_amounts
		 WHERE date_done >= ?
		   AND date_done < ? + INTERVAL '1 month'
		   AND status = ?
		 GROUP BY date_done
		 ORDER BY date_done`,
		month.Start(), month.Start(), statusApproved,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) DailyRows(ctx context.Context, date string) ([]domain.DailyWorkItemRow, error) {
	var rows []domain.DailyWorkItemRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT description,
		        MIN(unit) AS unit,
		        COALESCE(SUM(total_volume), 0)::bigint AS volume,
		        COALESCE(SUM(total_amount), 0)::bigint AS amount
		 FROM mv_fact_daily_amounts
		 WHERE date_done = ?::date
		   AND status = ?
		 GROUP BY description
		 ORDER BY description`,
		date, statusApproved,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) MonthlyDates(ctx context.Context, month period.Month) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT DISTINCT to_char(date_done, 'YYYY-MM-DD') AS date
		 FROM mv_fact_daily_amounts
		 WHERE date_done >= ?
		   AND date_done < ? + INTERVAL '1 month'
		   AND status = ?
		 ORDER BY date`,
		month.Start(), month.Start(), statusApproved,
	).Scan(&dates).Error
	return dates, err
}

func (r *repo) FactByTypeOfWork(ctx context.Context, month period.Month) ([]domain.TypeOfWorkFactRow, error) {
	var rows []domain.TypeOfWorkFactRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(type_of_work, 'Не указано') AS type_of_work,
		        COALESCE(SUM(total_amount), 0)::bigint AS amount
		 FROM mv_fact_daily_amounts
		 WHERE date_done >= ?
		   AND date_done < ? + INTERVAL '1 month'
		   AND status = ?
		 GROUP BY type_of_work
		 ORDER BY amount DESC`,
		month.Start(), month.Start(), statusApproved,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) LastLoadedAt(ctx context.Context) (*time.Time, error) {
	var row struct {
		LoadedAt *time.Time `gorm:"column:loaded_at"`
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT MAX(last_refresh) AS loaded_at
		 FROM pg_catalog.pg_matviews
		 WHERE matviewname IN ?`,
		[]string{
			"mv_fact_daily_amounts",
			"mv_plan_vs_fact_monthly_ids",
			"mv_plan_fact_monthly_backend_ids",
		},
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.LoadedAt, nil
}
