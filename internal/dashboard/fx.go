package dashboard

import (
	"go.uber.org/fx"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/repository"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/service"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
