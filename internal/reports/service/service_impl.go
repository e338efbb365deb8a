package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/clock"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/providers/pdf"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

type Params struct {
	fx.In

	Repo  domain.Repository
	Log   *zap.Logger
	Clock clock.Clock
	PDF   pdf.Provider
}

type Service struct {
	repo  domain.Repository
	log   *zap.Logger
	clock clock.Clock
	pdf   pdf.Provider
}

func New(p Params) domain.Service {
	return &Service{
		repo:  p.Repo,
		log:   p.Log.Named("reports.service"),
		clock: p.Clock,
		pdf:   p.PDF,
	}
}

func (s *Service) MonthlyReport(ctx context.Context, month string) (domain.MonthlyReportData, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.MonthlyReportData{}, err
	}

	rows, err := s.repo.MonthlyReportRows(ctx, key)
	if err != nil {
		return domain.MonthlyReportData{}, err
	}

	items := make([]domain.ReportWorkItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.ReportWorkItem{
			SmetaCode:      r.SmetaCode,
			Description:    r.Description,
			Unit:           r.Unit,
			FactVolumeDone: r.FactVolumeDone,
			FactAmountDone: r.FactAmountDone,
		})
	}
	groups, grandTotal := aggregateGroups(items)

	// A missing load date only blanks the footer line of the report.
	var loadedAt *string
	if loaded, err := s.repo.LastLoadedAt(ctx); err != nil {
		s.log.Warn("load date lookup failed", zap.Error(err))
	} else if loaded != nil {
		formatted := domain.FormatDateRussian(loaded.UTC())
		loadedAt = &formatted
	}

	return domain.MonthlyReportData{
		MonthStart:   key,
		ReportDate:   s.clock.Now(),
		DataLoadedAt: loadedAt,
		Groups:       groups,
		GrandTotal:   grandTotal,
	}, nil
}

func (s *Service) MonthlyReportPDF(ctx context.Context, month string) (domain.RenderedReport, error) {
	data, err := s.MonthlyReport(ctx, month)
	if err != nil {
		return domain.RenderedReport{}, err
	}

	content, err := s.pdf.MonthlyReport(ctx, data)
	if err != nil {
		return domain.RenderedReport{}, err
	}

	return domain.RenderedReport{
		Filename: fmt.Sprintf("Report_MAD_Podolsk_%s.pdf", data.MonthStart.Start().Format("01-2006")),
		Content:  content,
	}, nil
}
