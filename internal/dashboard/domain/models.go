package domain

// Smeta keys accepted by the drill-down queries. The three budget lines
// are fixed: summer works, winter works and off-schedule (vnereglement)
// works. Vnereglement maps to two raw codes and has no plan of its own.
const (
	SmetaLeto         = "leto"
	SmetaZima         = "zima"
	SmetaVnereglement = "vnereglement"
)

var smetaLabels = map[string]string{
	SmetaLeto:         "Лето",
	SmetaZima:         "Зима",
	SmetaVnereglement: "Внерегламент",
}

var smetaCodes = map[string][]string{
	SmetaLeto:         {"лето"},
	SmetaZima:         {"зима"},
	SmetaVnereglement: {"внерегл_ч_1", "внерегл_ч_2"},
}

// SmetaKeyCodes returns the raw category codes behind a smeta key, or
// nil for an unknown key.
func SmetaKeyCodes(smetaKey string) []string {
	return smetaCodes[smetaKey]
}

// SmetaLabel returns the human label for a smeta key.
func SmetaLabel(smetaKey string) string {
	return smetaLabels[smetaKey]
}

// VnereglementCodes are the raw codes whose itemized fact rows back the
// fallback computation of fact_vnereglament.
func VnereglementCodes() []string {
	return smetaCodes[SmetaVnereglement]
}

// PlanFact is the complete derived KPI record for one month. All
// amounts are whole currency units.
type PlanFact struct {
	MonthKey         string `json:"month_key"`
	PlanLeto         int64  `json:"plan_leto"`
	PlanZima         int64  `json:"plan_zima"`
	PlanVnereglament int64  `json:"plan_vnereglament"`
	PlanTotal        int64  `json:"plan_total"`
	FactLeto         int64  `json:"fact_leto"`
	FactZima         int64  `json:"fact_zima"`
	FactVnereglament int64  `json:"fact_vnereglament"`
	FactTotal        int64  `json:"fact_total"`
}

// SmetaCard is the plan/fact/delta card for one budget line.
type SmetaCard struct {
	SmetaKey string `json:"smeta_key"`
	Label    string `json:"label"`
	Plan     int64  `json:"plan"`
	Fact     int64  `json:"fact"`
	Delta    int64  `json:"delta"`
}

// ContractSummary reports the contracted amount against the cumulative
// executed amount across all months. The percentage is omitted when the
// contract amount is zero.
type ContractSummary struct {
	SummaContract       int64    `json:"summa_contract"`
	FactTotal           int64    `json:"fact_total"`
	ContractPlanfactPct *float64 `json:"contract_planfact_pct"`
}

type KPISummary struct {
	PlanTotal       int64 `json:"plan_total"`
	FactTotal       int64 `json:"fact_total"`
	Delta           int64 `json:"delta"`
	AvgDailyRevenue int64 `json:"avg_daily_revenue"`
}

type MonthlySummary struct {
	Month    string          `json:"month"`
	Contract ContractSummary `json:"contract"`
	KPI      KPISummary      `json:"kpi"`
}

type SmetaCards struct {
	Month string      `json:"month"`
	Cards []SmetaCard `json:"cards"`
}

type SmetaDetailRow struct {
	Description   string `json:"description"`
	DescriptionID string `json:"description_id"`
	Plan          int64  `json:"plan"`
	Fact          int64  `json:"fact"`
	Delta         int64  `json:"delta"`
}

type SmetaDetails struct {
	Month    string           `json:"month"`
	SmetaKey string           `json:"smeta_key"`
	Rows     []SmetaDetailRow `json:"rows"`
}

type DescriptionDailyRow struct {
	Date   string  `json:"date"`
	Volume int64   `json:"volume"`
	Unit   *string `json:"unit"`
	Amount int64   `json:"amount"`
}

type DescriptionDaily struct {
	Month       string                `json:"month"`
	SmetaKey    string                `json:"smeta_key"`
	Description string                `json:"description"`
	Rows        []DescriptionDailyRow `json:"rows"`
}

type DailyRevenuePoint struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

type DailyRevenue struct {
	Month string              `json:"month"`
	Rows  []DailyRevenuePoint `json:"rows"`
}

type CombinedSummary struct {
	PlannedAmount         *float64 `json:"planned_amount"`
	FactAmount            *float64 `json:"fact_amount"`
	CompletionPct         *float64 `json:"completion_pct"`
	DeltaAmount           *float64 `json:"delta_amount"`
	ContractAmount        *int64   `json:"contract_amount"`
	ContractExecuted      *int64   `json:"contract_executed"`
	ContractCompletionPct *float64 `json:"contract_completion_pct"`
	AverageDailyRevenue   *int64   `json:"average_daily_revenue"`
	DailyRevenue          *int64   `json:"daily_revenue"`
}

// DashboardItem is one itemized plan-vs-fact row of the selected month.
type DashboardItem struct {
	MonthStart    string  `json:"month_start"`
	Smeta         string  `json:"smeta"`
	WorkName      string  `json:"work_name"`
	PlannedAmount float64 `json:"planned_amount"`
	FactAmount    float64 `json:"fact_amount"`
}

type CombinedDashboard struct {
	Month           *string         `json:"month"`
	LastUpdated     *string         `json:"last_updated"`
	Summary         CombinedSummary `json:"summary"`
	Items           []DashboardItem `json:"items"`
	Cards           []SmetaCard     `json:"cards"`
	HasData         bool            `json:"has_data"`
	AvailableMonths []string        `json:"available_months"`
}

type DailyWorkRow struct {
	Description string  `json:"description"`
	Unit        *string `json:"unit"`
	Volume      int64   `json:"volume"`
	Amount      int64   `json:"amount"`
}

type DailyTotal struct {
	Amount int64 `json:"amount"`
}

type DailyReport struct {
	Date  string         `json:"date"`
	Rows  []DailyWorkRow `json:"rows"`
	Total DailyTotal     `json:"total"`
}

type TypeOfWorkRow struct {
	TypeOfWork string `json:"type_of_work"`
	Amount     int64  `json:"amount"`
}

type TypeOfWorkReport struct {
	Month string          `json:"month"`
	Rows  []TypeOfWorkRow `json:"rows"`
	Total int64           `json:"total"`
}

type LoadedAt struct {
	LoadedAt *string `json:"loaded_at"`
}
