package main

import (
	"go.uber.org/fx"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/clock"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/config"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/descriptions"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/observability"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/providers/pdf"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/server"
	"github.com/ecousadba4-pixel/mad-podolsk-api/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		descriptions.Module,

		dashboard.Module,
		reports.Module,
		pdf.Module,

		server.Module,
	)
	app.Run()
}
