package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/clock"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

type fakeRepo struct {
	rows     []domain.ReportRow
	loadedAt *time.Time
}

func (f *fakeRepo) MonthlyReportRows(context.Context, period.Month) ([]domain.ReportRow, error) {
	return f.rows, nil
}

func (f *fakeRepo) LastLoadedAt(context.Context) (*time.Time, error) {
	return f.loadedAt, nil
}

type fakePDF struct {
	got domain.MonthlyReportData
}

func (f *fakePDF) MonthlyReport(_ context.Context, data domain.MonthlyReportData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-1.7"), nil
}

func TestMonthlyReport(t *testing.T) {
	loaded := time.Date(2025, 11, 27, 5, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		rows: []domain.ReportRow{
			{SmetaCode: "зима", Description: "Россыпь ПГМ", FactAmountDone: 100},
			{SmetaCode: "лето", Description: "Уборка обочин", FactAmountDone: 300},
		},
		loadedAt: &loaded,
	}
	svc := New(Params{
		Repo:  repo,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2025, 12, 9, 10, 0, 0, 0, time.UTC)),
		PDF:   &fakePDF{},
	})

	t.Run("builds the grouped report", func(t *testing.T) {
		data, err := svc.MonthlyReport(context.Background(), "2025-11")
		require.NoError(t, err)

		assert.Equal(t, "2025-11", data.MonthStart.String())
		require.Len(t, data.Groups, 2)
		assert.Equal(t, "лето", data.Groups[0].SmetaCode)
		assert.Equal(t, 400.0, data.GrandTotal)
		require.NotNil(t, data.DataLoadedAt)
		assert.Equal(t, "27 ноября 2025", *data.DataLoadedAt)
	})

	t.Run("rejects a malformed month", func(t *testing.T) {
		_, err := svc.MonthlyReport(context.Background(), "11-2025")
		assert.ErrorIs(t, err, period.ErrInvalidMonthFormat)
	})
}

func TestMonthlyReportPDF(t *testing.T) {
	pdf := &fakePDF{}
	svc := New(Params{
		Repo:  &fakeRepo{},
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2025, 12, 9, 10, 0, 0, 0, time.UTC)),
		PDF:   pdf,
	})

	report, err := svc.MonthlyReportPDF(context.Background(), "2025-11-01")
	require.NoError(t, err)

	assert.Equal(t, "Report_MAD_Podolsk_11-2025.pdf", report.Filename)
	assert.NotEmpty(t, report.Content)
	assert.Equal(t, "2025-11", pdf.got.MonthStart.String())
}
