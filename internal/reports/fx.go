package reports

import (
	"go.uber.org/fx"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/repository"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/service"
)

var Module = fx.Module("reports.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
