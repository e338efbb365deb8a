package service

import (
	"sort"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

// aggregateGroups sections the itemized rows by smeta code. Groups are
// ordered by subtotal descending and items within a group by amount
// descending, both stable, so ties keep their source order. The second
// return is the grand total over all groups.
func aggregateGroups(items []domain.ReportWorkItem) ([]domain.SmetaGroup, float64) {
	order := make([]string, 0)
	byCode := make(map[string][]domain.ReportWorkItem)
	for _, item := range items {
		if _, ok := byCode[item.SmetaCode]; !ok {
			order = append(order, item.SmetaCode)
		}
		byCode[item.SmetaCode] = append(byCode[item.SmetaCode], item)
	}

	groups := make([]domain.SmetaGroup, 0, len(order))
	grandTotal := 0.0
	for _, code := range order {
		groupItems := byCode[code]
		sort.SliceStable(groupItems, func(i, j int) bool {
			return groupItems[i].FactAmountDone > groupItems[j].FactAmountDone
		})

		subtotal := 0.0
		for _, item := range groupItems {
			subtotal += item.FactAmountDone
		}
		grandTotal += subtotal

		groups = append(groups, domain.SmetaGroup{
			SmetaCode: code,
			Items:     groupItems,
			Subtotal:  subtotal,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Subtotal > groups[j].Subtotal
	})

	return groups, grandTotal
}
