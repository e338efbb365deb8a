package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	reports "github.com/ecousadba4-pixel/mad-podolsk-api/internal/reports/domain"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) MonthlyReport(ctx context.Context, data reports.MonthlyReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Стр. {current} из {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Отчет о выполненных работах", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "МАД Подольск, "+reports.FormatMonthRussian(data.MonthStart), props.Text{
			Size:  12,
			Align: align.Center,
		}),
	)

	loadedAt := "нет данных"
	if data.DataLoadedAt != nil {
		loadedAt = *data.DataLoadedAt
	}
	m.AddRow(12,
		col.New(6).Add(
			text.New("Дата формирования: "+reports.FormatDateRussian(data.ReportDate), props.Text{Size: 9}),
			text.New("Данные загружены: "+loadedAt, props.Text{Size: 9, Top: 5}),
		),
		col.New(6),
	)

	m.AddRow(8,
		text.NewCol(6, "Наименование работ", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Ед. изм.", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Объем", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Сумма, руб.", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, group := range data.Groups {
		m.AddRow(8,
			text.NewCol(12, "Смета: "+group.SmetaCode, props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Top:   2,
			}),
		)
		for _, item := range group.Items {
			unit := ""
			if item.Unit != nil {
				unit = *item.Unit
			}
			m.AddRow(7,
				text.NewCol(6, item.Description, props.Text{Size: 8}),
				text.NewCol(2, unit, props.Text{Size: 8, Align: align.Right}),
				text.NewCol(2, reports.FormatVolume(item.FactVolumeDone), props.Text{Size: 8, Align: align.Right}),
				text.NewCol(2, reports.FormatAmount(item.FactAmountDone), props.Text{Size: 8, Align: align.Right}),
			)
		}
		m.AddRow(8,
			text.NewCol(10, "Итого по смете", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, reports.FormatAmount(group.Subtotal), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		m.AddRow(2, line.NewCol(12))
	}

	m.AddRow(10,
		text.NewCol(10, "ВСЕГО", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
		text.NewCol(2, reports.FormatAmount(data.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
