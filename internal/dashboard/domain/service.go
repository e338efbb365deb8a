package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidSmetaKey     = errors.New("invalid_smeta_key")
	ErrInvalidDateFormat   = errors.New("invalid_date_format")
	ErrDescriptionNotFound = errors.New("description_not_found")
	ErrDescriptionRequired = errors.New("description_required")
)

// Service answers the dashboard reporting queries. Month arguments
// accept any date-like string of length >= 7; normalization happens at
// the service boundary.
type Service interface {
	AvailableMonths(ctx context.Context, limit int) ([]string, error)
	MonthlySummary(ctx context.Context, month string) (MonthlySummary, error)
	MonthlyBySmeta(ctx context.Context, month string) (SmetaCards, error)
	SmetaDetails(ctx context.Context, month, smetaKey string) (SmetaDetails, error)
	SmetaDescriptionDaily(ctx context.Context, month, smetaKey, description, descriptionID string) (DescriptionDaily, error)
	DailyRevenue(ctx context.Context, month string) (DailyRevenue, error)
	MonthlyDates(ctx context.Context, month string) ([]string, error)
	FactByTypeOfWork(ctx context.Context, month string) (TypeOfWorkReport, error)
	CombinedDashboard(ctx context.Context, month string) (CombinedDashboard, error)
	Daily(ctx context.Context, date string) (DailyReport, error)
	LastLoaded(ctx context.Context) (LoadedAt, error)
}
