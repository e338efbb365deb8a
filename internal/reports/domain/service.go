package domain

import "context"

// Service builds the printable monthly execution report.
type Service interface {
	MonthlyReport(ctx context.Context, month string) (MonthlyReportData, error)
	MonthlyReportPDF(ctx context.Context, month string) (RenderedReport, error)
}
