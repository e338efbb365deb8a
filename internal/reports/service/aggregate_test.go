package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

func item(code, desc string, amount float64) domain.ReportWorkItem {
	return domain.ReportWorkItem{SmetaCode: code, Description: desc, FactAmountDone: amount}
}

func TestAggregateGroups(t *testing.T) {
	t.Run("groups by smeta code and orders by subtotal", func(t *testing.T) {
		items := []domain.ReportWorkItem{
			item("зима", "Россыпь ПГМ", 100),
			item("лето", "Уборка обочин", 300),
			item("зима", "Очистка от снега", 150),
			item("лето", "Ямочный ремонт", 50),
		}

		groups, total := aggregateGroups(items)

		require.Len(t, groups, 2)
		assert.Equal(t, "лето", groups[0].SmetaCode)
		assert.Equal(t, 350.0, groups[0].Subtotal)
		assert.Equal(t, "зима", groups[1].SmetaCode)
		assert.Equal(t, 250.0, groups[1].Subtotal)
		assert.Equal(t, 600.0, total)
	})

	t.Run("items within a group are ordered by amount descending", func(t *testing.T) {
		items := []domain.ReportWorkItem{
			item("лето", "малая", 10),
			item("лето", "большая", 100),
			item("лето", "средняя", 50),
		}

		groups, _ := aggregateGroups(items)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Items, 3)
		assert.Equal(t, "большая", groups[0].Items[0].Description)
		assert.Equal(t, "средняя", groups[0].Items[1].Description)
		assert.Equal(t, "малая", groups[0].Items[2].Description)
	})

	t.Run("ties keep source order", func(t *testing.T) {
		items := []domain.ReportWorkItem{
			item("а", "первая", 100),
			item("б", "вторая", 100),
		}

		groups, _ := aggregateGroups(items)

		require.Len(t, groups, 2)
		assert.Equal(t, "а", groups[0].SmetaCode)
		assert.Equal(t, "б", groups[1].SmetaCode)
	})

	t.Run("grand total equals the sum of all input amounts", func(t *testing.T) {
		items := []domain.ReportWorkItem{
			item("а", "x", 12.5),
			item("б", "y", 7.25),
			item("а", "z", 80.25),
		}

		groups, total := aggregateGroups(items)

		subtotalSum := 0.0
		for _, g := range groups {
			subtotalSum += g.Subtotal
		}
		assert.Equal(t, 100.0, total)
		assert.Equal(t, total, subtotalSum)
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		groups, total := aggregateGroups(nil)
		assert.Empty(t, groups)
		assert.Zero(t, total)
	})
}
