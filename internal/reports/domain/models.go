package domain

import (
	"time"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

// ReportWorkItem is one executed work line of the monthly report.
// Amounts stay fractional here: the report prints kopeck precision.
type ReportWorkItem struct {
	SmetaCode      string  `json:"smeta_code"`
	Description    string  `json:"description"`
	Unit           *string `json:"unit"`
	FactVolumeDone float64 `json:"fact_volume_done"`
	FactAmountDone float64 `json:"fact_amount_done"`
}

// SmetaGroup is a report section: all items of one smeta code with the
// section subtotal.
type SmetaGroup struct {
	SmetaCode string           `json:"smeta_code"`
	Items     []ReportWorkItem `json:"items"`
	Subtotal  float64          `json:"subtotal"`
}

// MonthlyReportData is everything the report template needs.
// DataLoadedAt is pre-formatted in Russian, nil when the load date is
// unknown.
type MonthlyReportData struct {
	MonthStart   period.Month `json:"month_start"`
	ReportDate   time.Time    `json:"report_date"`
	DataLoadedAt *string      `json:"data_loaded_at"`
	Groups       []SmetaGroup `json:"smeta_groups"`
	GrandTotal   float64      `json:"grand_total"`
}

// RenderedReport is a generated PDF with its download filename.
type RenderedReport struct {
	Filename string
	Content  []byte
}
