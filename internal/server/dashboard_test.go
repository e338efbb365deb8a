package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/config"
	dashboarddomain "github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/domain"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
	reportsdomain "github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

type fakeDashboardService struct {
	summaryErr error
	detailsErr error
	dailyErr   error
}

func (f *fakeDashboardService) AvailableMonths(ctx context.Context, limit int) ([]string, error) {
	_ = ctx
	months := []string{"2025-11", "2025-10"}
	if limit > 0 && limit < len(months) {
		months = months[:limit]
	}
	return months, nil
}

func (f *fakeDashboardService) MonthlySummary(ctx context.Context, month string) (dashboarddomain.MonthlySummary, error) {
	_ = ctx
	if f.summaryErr != nil {
		return dashboarddomain.MonthlySummary{}, f.summaryErr
	}
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return dashboarddomain.MonthlySummary{}, err
	}
	return dashboarddomain.MonthlySummary{Month: key.String()}, nil
}

func (f *fakeDashboardService) MonthlyBySmeta(ctx context.Context, month string) (dashboarddomain.SmetaCards, error) {
	_ = ctx
	_ = month
	return dashboarddomain.SmetaCards{Month: "2025-11"}, nil
}

func (f *fakeDashboardService) SmetaDetails(ctx context.Context, month, smetaKey string) (dashboarddomain.SmetaDetails, error) {
	_ = ctx
	_ = month
	if f.detailsErr != nil {
		return dashboarddomain.SmetaDetails{}, f.detailsErr
	}
	if dashboarddomain.SmetaKeyCodes(smetaKey) == nil {
		return dashboarddomain.SmetaDetails{}, dashboarddomain.ErrInvalidSmetaKey
	}
	return dashboarddomain.SmetaDetails{Month: "2025-11", SmetaKey: smetaKey}, nil
}

func (f *fakeDashboardService) SmetaDescriptionDaily(ctx context.Context, month, smetaKey, description, descriptionID string) (dashboarddomain.DescriptionDaily, error) {
	_ = ctx
	_ = month
	_ = smetaKey
	if description == "" && descriptionID == "" {
		return dashboarddomain.DescriptionDaily{}, dashboarddomain.ErrDescriptionRequired
	}
	if description == "" {
		return dashboarddomain.DescriptionDaily{}, dashboarddomain.ErrDescriptionNotFound
	}
	return dashboarddomain.DescriptionDaily{Description: description}, nil
}

func (f *fakeDashboardService) DailyRevenue(ctx context.Context, month string) (dashboarddomain.DailyRevenue, error) {
	_ = ctx
	_ = month
	return dashboarddomain.DailyRevenue{Month: "2025-11"}, nil
}

func (f *fakeDashboardService) MonthlyDates(ctx context.Context, month string) ([]string, error) {
	_ = ctx
	_ = month
	return []string{"2025-11-01"}, nil
}

func (f *fakeDashboardService) FactByTypeOfWork(ctx context.Context, month string) (dashboarddomain.TypeOfWorkReport, error) {
	_ = ctx
	_ = month
	return dashboarddomain.TypeOfWorkReport{Month: "2025-11"}, nil
}

func (f *fakeDashboardService) CombinedDashboard(ctx context.Context, month string) (dashboarddomain.CombinedDashboard, error) {
	_ = ctx
	if month != "" {
		if _, err := period.NormalizeMonth(month); err != nil {
			return dashboarddomain.CombinedDashboard{}, err
		}
	}
	return dashboarddomain.CombinedDashboard{AvailableMonths: []string{"2025-11"}}, nil
}

func (f *fakeDashboardService) Daily(ctx context.Context, date string) (dashboarddomain.DailyReport, error) {
	_ = ctx
	if f.dailyErr != nil {
		return dashboarddomain.DailyReport{}, f.dailyErr
	}
	return dashboarddomain.DailyReport{Date: date}, nil
}

func (f *fakeDashboardService) LastLoaded(ctx context.Context) (dashboarddomain.LoadedAt, error) {
	_ = ctx
	loaded := "2025-11-20T06:30:00Z"
	return dashboarddomain.LoadedAt{LoadedAt: &loaded}, nil
}

type fakeReportsService struct{}

func (f *fakeReportsService) MonthlyReport(ctx context.Context, month string) (reportsdomain.MonthlyReportData, error) {
	_ = ctx
	_ = month
	return reportsdomain.MonthlyReportData{}, nil
}

func (f *fakeReportsService) MonthlyReportPDF(ctx context.Context, month string) (reportsdomain.RenderedReport, error) {
	_ = ctx
	if _, err := period.NormalizeMonth(month); err != nil {
		return reportsdomain.RenderedReport{}, err
	}
	return reportsdomain.RenderedReport{
		Filename: "Report_MAD_Podolsk_11-2025.pdf",
		Content:  []byte("%PDF-1.7"),
	}, nil
}

func newTestServer(dashboard dashboarddomain.Service) *Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:          r,
		Cfg:          config.Config{},
		DashboardSvc: dashboard,
		ReportsSvc:   &fakeReportsService{},
	})
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Type
}

func TestGetCombinedDashboard(t *testing.T) {
	srv := newTestServer(&fakeDashboardService{})

	t.Run("without month", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid month", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard?month=x")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation_error", errorType(t, rec))
	})
}

func TestGetMonths(t *testing.T) {
	srv := newTestServer(&fakeDashboardService{})

	t.Run("returns a bare array", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard/months?limit=1")
		require.Equal(t, http.StatusOK, rec.Code)

		var months []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &months))
		assert.Equal(t, []string{"2025-11"}, months)
	})

	t.Run("limit must be between 1 and 120", func(t *testing.T) {
		for _, limit := range []string{"abc", "0", "-1", "121"} {
			rec := doRequest(t, srv, "/api/dashboard/months?limit="+limit)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}

		rec := doRequest(t, srv, "/api/dashboard/months?limit=120")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetMonthlySummary(t *testing.T) {
	srv := newTestServer(&fakeDashboardService{})

	t.Run("month is required", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard/monthly/summary")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation_error", errorType(t, rec))
	})

	t.Run("full date is accepted", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard/monthly/summary?month=2025-11-15")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboarddomain.MonthlySummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "2025-11", body.Month)
	})
}

func TestGetSmetaDetails(t *testing.T) {
	srv := newTestServer(&fakeDashboardService{})

	rec := doRequest(t, srv, "/api/dashboard/monthly/smeta-details?month=2025-11&smeta_key=leto")
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("smeta is accepted as a legacy alias", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard/monthly/smeta-details?month=2025-11&smeta=leto")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	rec = doRequest(t, srv, "/api/dashboard/monthly/smeta-details?month=2025-11&smeta_key=vesna")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorType(t, rec))
}

func TestGetSmetaDescriptionDaily(t *testing.T) {
	srv := newTestServer(&fakeDashboardService{})

	t.Run("unknown description id", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard/monthly/smeta-description-daily?month=2025-11&smeta_key=leto&description_id=abc123abc123")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", errorType(t, rec))
	})

	t.Run("missing description and id", func(t *testing.T) {
		rec := doRequest(t, srv, "/api/dashboard/monthly/smeta-description-daily?month=2025-11&smeta_key=leto")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetDaily(t *testing.T) {
	t.Run("day is accepted as an alias for date", func(t *testing.T) {
		srv := newTestServer(&fakeDashboardService{})

		rec := doRequest(t, srv, "/api/dashboard/daily?day=2025-11-03")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboarddomain.DailyReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "2025-11-03", body.Date)
	})

	t.Run("malformed and missing dates are rejected", func(t *testing.T) {
		srv := newTestServer(&fakeDashboardService{dailyErr: dashboarddomain.ErrInvalidDateFormat})

		rec := doRequest(t, srv, "/api/dashboard/daily?date=03.11.2025")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, srv, "/api/dashboard/daily")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetMonthlyReport(t *testing.T) {
	srv := newTestServer(&fakeDashboardService{})

	rec := doRequest(t, srv, "/api/reports/monthly?month=2025-11")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Report_MAD_Podolsk_11-2025.pdf")

	rec = doRequest(t, srv, "/api/reports/monthly")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
