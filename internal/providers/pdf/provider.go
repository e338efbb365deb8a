package pdf

import (
	"context"

	"go.uber.org/fx"

	reports "github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

// Provider renders report documents.
type Provider interface {
	MonthlyReport(ctx context.Context, data reports.MonthlyReportData) ([]byte, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
