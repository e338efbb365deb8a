package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/config"
	dashboarddomain "github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/domain"
	obsmiddleware "github.com/ecousadba4-pixel/mad-podolsk-api/internal/observability/logger"
	obsmetrics "github.com/ecousadba4-pixel/mad-podolsk-api/internal/observability/metrics"
	reportsdomain "github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())
	r.Use(corsMiddleware(cfg))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-Id"}
	return cors.New(corsCfg)
}

func registerGin(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	dashboardSvc dashboarddomain.Service
	reportsSvc   reportsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DashboardSvc dashboarddomain.Service
	ReportsSvc   reportsdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		dashboardSvc: p.DashboardSvc,
		reportsSvc:   p.ReportsSvc,
	}

	svc.registerDashboardRoutes()
	svc.registerReportRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerDashboardRoutes() {
	dashboard := s.engine.Group("/api/dashboard")

	dashboard.GET("", s.GetCombinedDashboard)
	dashboard.GET("/months", s.GetMonths)
	dashboard.GET("/monthly/summary", s.GetMonthlySummary)
	dashboard.GET("/monthly/by-smeta", s.GetMonthlyBySmeta)
	dashboard.GET("/monthly/daily-revenue", s.GetDailyRevenue)
	dashboard.GET("/monthly/dates", s.GetMonthlyDates)
	dashboard.GET("/monthly/smeta-details", s.GetSmetaDetails)
	dashboard.GET("/monthly/smeta-description-daily", s.GetSmetaDescriptionDaily)
	dashboard.GET("/monthly/by-type-of-work", s.GetFactByTypeOfWork)
	dashboard.GET("/last-loaded", s.GetLastLoaded)
	dashboard.GET("/daily", s.GetDaily)
}

func (s *Server) registerReportRoutes() {
	reports := s.engine.Group("/api/reports")

	reports.GET("/monthly", s.GetMonthlyReport)
}
