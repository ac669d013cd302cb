package report

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/paymirror/internal/dashboard/domain"
	txdomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
)

func TestGenerateSummaryProducesPDF(t *testing.T) {
	data := SummaryData{
		AccountName: "Demo Store",
		PeriodLabel: "March 2024",
		GeneratedAt: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC).Format(time.RFC1123),
		Currency:    "USD",
		Overview: domain.Overview{
			TotalRevenue:   domain.RevenueMetric{Amount: 60, Growth: 50},
			TotalCustomers: domain.CustomerMetric{Count: 3, Growth: 100},
			MonthlyGrowth:  50,
			SucceededCount: 3,
			FailedCount:    1,
			AvgOrderValue:  20,
			RevenueChart: domain.RevenueChart{
				Current: []domain.ChartPoint{
					{Label: "1", Revenue: 10},
					{Label: "2", Revenue: 50},
				},
			},
			RecentTransactions: []txdomain.Transaction{
				{
					ProcessorID:  "ch_1",
					Source:       txdomain.SourceCharge,
					CustomerName: "Ada Lovelace",
					Amount:       1000,
					Currency:     "usd",
					Status:       txdomain.StatusSucceeded,
					CreatedAt:    time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC),
				},
				{
					ProcessorID:  "pi_2",
					Source:       txdomain.SourcePaymentAttempt,
					CustomerName: "Unknown customer",
					Amount:       500,
					Currency:     "usd",
					Status:       txdomain.StatusFailed,
					CreatedAt:    time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}

	reader, err := New().GenerateSummary(context.Background(), data)
	require.NoError(t, err)

	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "output is not a PDF document")
}

func TestGenerateSummaryEmptyOverview(t *testing.T) {
	reader, err := New().GenerateSummary(context.Background(), SummaryData{
		AccountName: "All accounts",
		PeriodLabel: "This Week",
		Currency:    "USD",
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
}

func TestFormatHelpers(t *testing.T) {
	require.Equal(t, "1234.50 USD", formatAmount(1234.5, "USD"))
	require.Equal(t, "-3.25%", formatPercent(-3.25))
}
