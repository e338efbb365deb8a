package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/cache"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/clock"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/dashboard/domain"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/descriptions"
	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

const (
	monthsTTL     = 5 * time.Minute
	lastLoadedTTL = time.Minute

	combinedTTL      = 2 * time.Minute
	combinedCapacity = 24

	dailyRevenueTTL      = 2 * time.Minute
	dailyRevenueCapacity = 24

	detailsTTL      = 2 * time.Minute
	detailsCapacity = 50

	// combinedMonthsLimit bounds the month picker in the combined payload.
	combinedMonthsLimit = 24

	// dailyNoiseThreshold drops near-zero technical rows from the daily
	// breakdown; the response total is recomputed over the survivors.
	dailyNoiseThreshold = 5
)

type Params struct {
	fx.In

	Repo     domain.Repository
	Log      *zap.Logger
	Clock    clock.Clock
	Registry *descriptions.Registry
}

// Service composes the caches, the plan/fact derivation and the
// description registry over the fetch collaborator. All mutable state
// is created here at startup and lives for the process lifetime.
type Service struct {
	repo     domain.Repository
	log      *zap.Logger
	clock    clock.Clock
	registry *descriptions.Registry

	months       *cache.TTL[[]string]
	lastLoaded   *cache.TTL[*time.Time]
	combined     *cache.KeyedTTL[string, domain.CombinedDashboard]
	dailyRevenue *cache.KeyedTTL[string, domain.DailyRevenue]
	details      *cache.KeyedTTL[string, domain.SmetaDetails]
}

func New(p Params) domain.Service {
	return &Service{
		repo:     p.Repo,
		log:      p.Log.Named("dashboard.service"),
		clock:    p.Clock,
		registry: p.Registry,

		months:       cache.NewTTL[[]string](p.Clock, monthsTTL),
		lastLoaded:   cache.NewTTL[*time.Time](p.Clock, lastLoadedTTL),
		combined:     cache.NewKeyedTTL[string, domain.CombinedDashboard](p.Clock, combinedTTL, combinedCapacity),
		dailyRevenue: cache.NewKeyedTTL[string, domain.DailyRevenue](p.Clock, dailyRevenueTTL, dailyRevenueCapacity),
		details:      cache.NewKeyedTTL[string, domain.SmetaDetails](p.Clock, detailsTTL, detailsCapacity),
	}
}

func (s *Service) AvailableMonths(ctx context.Context, limit int) ([]string, error) {
	months, err := s.months.GetOrCompute(func() ([]string, error) {
		return s.loadMonths(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(months) {
		months = months[:limit]
	}
	return months, nil
}

// loadMonths unions the three month sources. A failing source is logged
// and skipped so one degraded view cannot block month discovery.
func (s *Service) loadMonths(ctx context.Context) []string {
	sources := []struct {
		name string
		load func(context.Context) ([]string, error)
	}{
		{"plan_vs_fact", s.repo.MonthsFromPlanVsFact},
		{"plan_fact_backend", s.repo.MonthsFromPlanFactBackend},
		{"daily_facts", s.repo.MonthsFromDailyFacts},
	}

	seen := make(map[string]struct{})
	for _, source := range sources {
		raw, err := source.load(ctx)
		if err != nil {
			s.log.Warn("month source failed", zap.String("source", source.name), zap.Error(err))
			continue
		}
		for _, value := range raw {
			month, err := period.NormalizeMonth(value)
			if err != nil {
				continue
			}
			seen[month.String()] = struct{}{}
		}
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// planFact loads the raw aggregate and derives the full KPI record,
// reading itemized vnereglement facts only when the aggregate misses them.
func (s *Service) planFact(ctx context.Context, month period.Month) (domain.PlanFact, error) {
	row, err := s.repo.PlanFactMonth(ctx, month)
	if err != nil {
		return domain.PlanFact{}, err
	}
	return computePlanFact(month.String(), row, func() (int64, error) {
		return s.repo.SumFactVnereglament(ctx, month)
	})
}

// avgDailyRevenue averages a completed month over its full length. The
// current month is averaged over max(1, today-1) days: today's figures
// are usually incomplete and are excluded from the denominator.
func (s *Service) avgDailyRevenue(month period.Month, factTotal int64) int64 {
	now := s.clock.Now()
	denom := int64(month.Days())
	if month.Contains(now) {
		denom = int64(now.Day() - 1)
		if denom < 1 {
			denom = 1
		}
	}
	return factTotal / denom
}

func (s *Service) MonthlySummary(ctx context.Context, month string) (domain.MonthlySummary, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.MonthlySummary{}, err
	}

	planFact, err := s.planFact(ctx, key)
	if err != nil {
		return domain.MonthlySummary{}, err
	}
	contract, err := s.repo.ContractAmountSum(ctx)
	if err != nil {
		return domain.MonthlySummary{}, err
	}
	// The contract card shows the cumulative executed amount across all
	// months, not just the selected one.
	executed, err := s.repo.TotalFactAllMonths(ctx)
	if err != nil {
		return domain.MonthlySummary{}, err
	}

	var pct *float64
	if contract != 0 {
		v := float64(executed) / float64(contract)
		pct = &v
	}

	return domain.MonthlySummary{
		Month: key.String(),
		Contract: domain.ContractSummary{
			SummaContract:       contract,
			FactTotal:           executed,
			ContractPlanfactPct: pct,
		},
		KPI: domain.KPISummary{
			PlanTotal:       planFact.PlanTotal,
			FactTotal:       planFact.FactTotal,
			Delta:           planFact.FactTotal - planFact.PlanTotal,
			AvgDailyRevenue: s.avgDailyRevenue(key, planFact.FactTotal),
		},
	}, nil
}

func (s *Service) MonthlyBySmeta(ctx context.Context, month string) (domain.SmetaCards, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.SmetaCards{}, err
	}
	planFact, err := s.planFact(ctx, key)
	if err != nil {
		return domain.SmetaCards{}, err
	}
	return domain.SmetaCards{
		Month: planFact.MonthKey,
		Cards: buildCards(planFact),
	}, nil
}

func buildCards(pf domain.PlanFact) []domain.SmetaCard {
	cards := make([]domain.SmetaCard, 0, 3)
	for _, c := range []struct {
		key  string
		plan int64
		fact int64
	}{
		{domain.SmetaLeto, pf.PlanLeto, pf.FactLeto},
		{domain.SmetaZima, pf.PlanZima, pf.FactZima},
		{domain.SmetaVnereglement, pf.PlanVnereglament, pf.FactVnereglament},
	} {
		cards = append(cards, domain.SmetaCard{
			SmetaKey: c.key,
			Label:    domain.SmetaLabel(c.key),
			Plan:     c.plan,
			Fact:     c.fact,
			Delta:    c.fact - c.plan,
		})
	}
	return cards
}

func (s *Service) SmetaDetails(ctx context.Context, month, smetaKey string) (domain.SmetaDetails, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.SmetaDetails{}, err
	}
	codes := domain.SmetaKeyCodes(smetaKey)
	if codes == nil {
		return domain.SmetaDetails{}, domain.ErrInvalidSmetaKey
	}

	return s.details.GetOrCompute(key.String()+"|"+smetaKey, func() (domain.SmetaDetails, error) {
		return s.loadSmetaDetails(ctx, key, smetaKey, codes)
	})
}

func (s *Service) loadSmetaDetails(ctx context.Context, month period.Month, smetaKey string, codes []string) (domain.SmetaDetails, error) {
	// Vnereglement has no independent plan input; only fact rows exist.
	var planRows []domain.PlanRow
	if smetaKey != domain.SmetaVnereglement {
		var err error
		planRows, err = s.repo.PlanRowsBySmeta(ctx, month, codes[0])
		if err != nil {
			return domain.SmetaDetails{}, err
		}
	}
	factRows, err := s.repo.FactRowsBySmeta(ctx, month, codes)
	if err != nil {
		return domain.SmetaDetails{}, err
	}

	type entry struct {
		plan int64
		fact int64
	}
	order := make([]string, 0, len(planRows)+len(factRows))
	merged := make(map[string]*entry, len(planRows)+len(factRows))
	for _, r := range planRows {
		merged[r.Description] = &entry{plan: r.Plan}
		order = append(order, r.Description)
	}
	for _, r := range factRows {
		if e, ok := merged[r.Description]; ok {
			e.fact = r.Fact
			continue
		}
		merged[r.Description] = &entry{fact: r.Fact}
		order = append(order, r.Description)
	}

	rows := make([]domain.SmetaDetailRow, 0, len(order))
	for _, desc := range order {
		e := merged[desc]
		if e.plan <= 1 && e.fact <= 1 {
			continue
		}
		rows = append(rows, domain.SmetaDetailRow{
			Description:   desc,
			DescriptionID: s.registry.Register(desc),
			Plan:          e.plan,
			Fact:          e.fact,
			Delta:         e.fact - e.plan,
		})
	}

	return domain.SmetaDetails{
		Month:    month.String(),
		SmetaKey: smetaKey,
		Rows:     rows,
	}, nil
}

func (s *Service) SmetaDescriptionDaily(ctx context.Context, month, smetaKey, description, descriptionID string) (domain.DescriptionDaily, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.DescriptionDaily{}, err
	}
	codes := domain.SmetaKeyCodes(smetaKey)
	if codes == nil {
		return domain.DescriptionDaily{}, domain.ErrInvalidSmetaKey
	}

	if description == "" {
		if descriptionID == "" {
			return domain.DescriptionDaily{}, domain.ErrDescriptionRequired
		}
		resolved, ok := s.registry.Resolve(descriptionID)
		if !ok {
			// The registry fills up when details are listed; an unknown id
			// means the client skipped that step or the process restarted.
			return domain.DescriptionDaily{}, domain.ErrDescriptionNotFound
		}
		description = resolved
	}

	rows, err := s.repo.DescriptionDailyRows(ctx, key, description, codes)
	if err != nil {
		return domain.DescriptionDaily{}, err
	}

	out := make([]domain.DescriptionDailyRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DescriptionDailyRow{
			Date:   r.Date,
			Volume: r.Volume,
			Unit:   r.Unit,
			Amount: r.Amount,
		})
	}

	return domain.DescriptionDaily{
		Month:       key.String(),
		SmetaKey:    smetaKey,
		Description: description,
		Rows:        out,
	}, nil
}

func (s *Service) DailyRevenue(ctx context.Context, month string) (domain.DailyRevenue, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.DailyRevenue{}, err
	}

	return s.dailyRevenue.GetOrCompute(key.String(), func() (domain.DailyRevenue, error) {
		rows, err := s.repo.DailyRevenueRows(ctx, key)
		if err != nil {
			return domain.DailyRevenue{}, err
		}
		points := make([]domain.DailyRevenuePoint, 0, len(rows))
		for _, r := range rows {
			points = append(points, domain.DailyRevenuePoint{Date: r.Date, Amount: r.Amount})
		}
		return domain.DailyRevenue{Month: key.String(), Rows: points}, nil
	})
}

func (s *Service) MonthlyDates(ctx context.Context, month string) ([]string, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return nil, err
	}
	return s.repo.MonthlyDates(ctx, key)
}

func (s *Service) FactByTypeOfWork(ctx context.Context, month string) (domain.TypeOfWorkReport, error) {
	key, err := period.NormalizeMonth(month)
	if err != nil {
		return domain.TypeOfWorkReport{}, err
	}

	rows, err := s.repo.FactByTypeOfWork(ctx, key)
	if err != nil {
		return domain.TypeOfWorkReport{}, err
	}

	report := domain.TypeOfWorkReport{
		Month: key.String(),
		Rows:  make([]domain.TypeOfWorkRow, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, domain.TypeOfWorkRow{TypeOfWork: r.TypeOfWork, Amount: r.Amount})
		report.Total += r.Amount
	}
	return report, nil
}

func (s *Service) CombinedDashboard(ctx context.Context, month string) (domain.CombinedDashboard, error) {
	var key period.Month
	if month != "" {
		var err error
		key, err = period.NormalizeMonth(month)
		if err != nil {
			return domain.CombinedDashboard{}, err
		}
	}

	cacheKey := ""
	if !key.IsZero() {
		cacheKey = key.String()
	}

	return s.combined.GetOrCompute(cacheKey, func() (domain.CombinedDashboard, error) {
		return s.loadCombinedDashboard(ctx, key)
	})
}

func (s *Service) loadCombinedDashboard(ctx context.Context, key period.Month) (domain.CombinedDashboard, error) {
	out := domain.CombinedDashboard{
		Items: []domain.DashboardItem{},
		Cards: []domain.SmetaCard{},
	}
	if !key.IsZero() {
		monthKey := key.String()
		out.Month = &monthKey
	}

	months, err := s.AvailableMonths(ctx, combinedMonthsLimit)
	if err != nil {
		return domain.CombinedDashboard{}, err
	}
	out.AvailableMonths = months

	if !key.IsZero() {
		planFact, err := s.planFact(ctx, key)
		if err != nil {
			return domain.CombinedDashboard{}, err
		}
		contract, err := s.repo.ContractAmountSum(ctx)
		if err != nil {
			return domain.CombinedDashboard{}, err
		}

		planned := float64(planFact.PlanTotal)
		fact := float64(planFact.FactTotal)
		delta := fact - planned
		avg := s.avgDailyRevenue(key, planFact.FactTotal)

		// completion_pct, contract_executed and daily_revenue stay null
		// here; the cumulative contract basis belongs to the monthly
		// summary only.
		out.Summary.PlannedAmount = &planned
		out.Summary.FactAmount = &fact
		out.Summary.DeltaAmount = &delta
		out.Summary.ContractAmount = &contract
		out.Summary.AverageDailyRevenue = &avg
		if contract != 0 {
			pct := fact / float64(contract)
			out.Summary.ContractCompletionPct = &pct
		}

		items, err := s.repo.MonthlyItems(ctx, key)
		if err != nil {
			return domain.CombinedDashboard{}, err
		}
		for _, item := range items {
			out.Items = append(out.Items, domain.DashboardItem{
				MonthStart:    item.MonthStart,
				Smeta:         item.Smeta,
				WorkName:      item.WorkName,
				PlannedAmount: item.PlannedAmount,
				FactAmount:    item.FactAmount,
			})
		}
		out.Cards = buildCards(planFact)
	}

	if loaded := s.loadLastLoaded(ctx); loaded != nil {
		out.LastUpdated = loaded
	}
	out.HasData = len(out.Items) > 0

	return out, nil
}

func (s *Service) Daily(ctx context.Context, date string) (domain.DailyReport, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.DailyReport{}, domain.ErrInvalidDateFormat
	}

	rows, err := s.repo.DailyRows(ctx, date)
	if err != nil {
		return domain.DailyReport{}, err
	}

	report := domain.DailyReport{
		Date: date,
		Rows: make([]domain.DailyWorkRow, 0, len(rows)),
	}
	for _, r := range rows {
		if r.Amount <= dailyNoiseThreshold {
			continue
		}
		report.Rows = append(report.Rows, domain.DailyWorkRow{
			Description: r.Description,
			Unit:        r.Unit,
			Volume:      r.Volume,
			Amount:      r.Amount,
		})
		report.Total.Amount += r.Amount
	}
	return report, nil
}

func (s *Service) LastLoaded(ctx context.Context) (domain.LoadedAt, error) {
	return domain.LoadedAt{LoadedAt: s.loadLastLoaded(ctx)}, nil
}

// loadLastLoaded serves the newest matview refresh timestamp through its
// own short cache; a fetch failure degrades to "unknown" rather than
// failing the surrounding response.
func (s *Service) loadLastLoaded(ctx context.Context) *string {
	loaded, err := s.lastLoaded.GetOrCompute(func() (*time.Time, error) {
		return s.repo.LastLoadedAt(ctx)
	})
	if err != nil {
		s.log.Warn("last-loaded lookup failed", zap.Error(err))
		return nil
	}
	if loaded == nil {
		return nil
	}
	formatted := loaded.UTC().Format(time.RFC3339)
	return &formatted
}
