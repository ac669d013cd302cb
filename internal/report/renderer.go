package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smallbiznis/paymirror/internal/dashboard/domain"
)

// SummaryData holds everything rendered onto a financial summary PDF.
type SummaryData struct {
	AccountName string
	PeriodLabel string
	GeneratedAt string
	Currency    string

	Overview domain.Overview
}

type Renderer interface {
	GenerateSummary(ctx context.Context, data SummaryData) (io.Reader, error)
}

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

func (r *renderer) GenerateSummary(ctx context.Context, data SummaryData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Financial Summary", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(18,
		col.New(6).Add(
			text.New("Account: "+data.AccountName, props.Text{Top: 0}),
			text.New("Period: "+data.PeriodLabel, props.Text{Top: 4}),
			text.New("Generated: "+data.GeneratedAt, props.Text{Top: 8}),
		),
		col.New(6),
	)

	m.AddRow(10,
		text.NewCol(12, "Key metrics", props.Text{Size: 12, Style: fontstyle.Bold}),
	)

	ov := data.Overview
	metricRows := []struct {
		label string
		value string
	}{
		{"Total revenue", formatAmount(ov.TotalRevenue.Amount, data.Currency)},
		{"Revenue growth", formatPercent(ov.TotalRevenue.Growth)},
		{"New customers", fmt.Sprintf("%d", ov.TotalCustomers.Count)},
		{"Customer growth", formatPercent(ov.TotalCustomers.Growth)},
		{"Monthly growth", formatPercent(ov.MonthlyGrowth)},
		{"Transactions", fmt.Sprintf("%d", ov.TransactionCount)},
		{"Succeeded", fmt.Sprintf("%d", ov.SucceededCount)},
		{"Failed", fmt.Sprintf("%d", ov.FailedCount)},
		{"Average order value", formatAmount(ov.AvgOrderValue, data.Currency)},
	}
	for _, row := range metricRows {
		m.AddRow(8,
			text.NewCol(6, row.label, props.Text{Size: 9}),
			text.NewCol(6, row.value, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		text.NewCol(12, "Revenue by period", props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}),
	)
	m.AddRow(8,
		text.NewCol(6, "Bucket", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(6, "Revenue", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, point := range ov.RevenueChart.Current {
		m.AddRow(6,
			text.NewCol(6, point.Label, props.Text{Size: 9}),
			text.NewCol(6, formatAmount(point.Revenue, data.Currency), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if len(ov.RecentTransactions) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Recent transactions", props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}),
		)
		m.AddRow(8,
			text.NewCol(5, "Customer", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(3, "Status", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(4, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, tx := range ov.RecentTransactions {
			m.AddRow(6,
				text.NewCol(5, tx.CustomerName, props.Text{Size: 9}),
				text.NewCol(3, string(tx.Status), props.Text{Size: 9}),
				text.NewCol(4, formatAmount(float64(tx.Amount)/100, tx.Currency), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func formatAmount(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
