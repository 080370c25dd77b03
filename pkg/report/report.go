package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
)

// Reporter renders the reporting views for terminal consumption. Display
// only; the exported CSVs stay 0-1 fractions while the terminal shows
// percentages.
type Reporter struct {
	useColor bool
}

func NewReporter(useColor bool) *Reporter {
	return &Reporter{useColor: useColor}
}

func (r *Reporter) formatRate(rate *float64) string {
	if rate == nil {
		return "-"
	}
	formatted := fmt.Sprintf("%.2f%%", *rate*100)
	if !r.useColor {
		return formatted
	}
	switch {
	case *rate >= 0.5:
		return color.GreenString(formatted)
	case *rate >= 0.1:
		return color.YellowString(formatted)
	default:
		return color.RedString(formatted)
	}
}

// RenderRetentionMatrix pivots the retention rows into a cohort_week x
// cohort_index grid. Absent cells stay blank: "no data" is not 0% retention.
func (r *Reporter) RenderRetentionMatrix(rows []*analytics.CohortRetentionViewRow) string {
	var buf strings.Builder

	cells := make(map[string]map[uint64]*float64)
	sizes := make(map[string]uint64)
	maxIndex := uint64(0)
	for _, row := range rows {
		if cells[row.CohortWeek] == nil {
			cells[row.CohortWeek] = make(map[uint64]*float64)
		}
		cells[row.CohortWeek][row.CohortIndex] = row.RetentionRate
		sizes[row.CohortWeek] = row.CohortSize
		if row.CohortIndex > maxIndex {
			maxIndex = row.CohortIndex
		}
	}

	weeks := make([]string, 0, len(cells))
	for week := range cells {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	header := []string{"Cohort Week", "Size"}
	for i := uint64(0); i <= maxIndex; i++ {
		header = append(header, fmt.Sprintf("W%d", i))
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, week := range weeks {
		row := []string{week, fmt.Sprintf("%d", sizes[week])}
		for i := uint64(0); i <= maxIndex; i++ {
			rate, ok := cells[week][i]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, r.formatRate(rate))
		}
		table.Append(row)
	}
	table.Render()

	return buf.String()
}

func (r *Reporter) RenderFunnelSummary(rows []*analytics.FunnelMetricsRow) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Day", "Source", "Device", "Visits", "Views", "Carts", "Checkouts", "Purchases", "Visit→Purchase"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, row := range rows {
		table.Append([]string{
			row.Day,
			derefOr(row.Source, "-"),
			derefOr(row.Device, "-"),
			fmt.Sprintf("%d", row.VisitSessions),
			fmt.Sprintf("%d", row.ProductViewSessions),
			fmt.Sprintf("%d", row.AddToCartSessions),
			fmt.Sprintf("%d", row.CheckoutSessions),
			fmt.Sprintf("%d", row.PurchaseSessions),
			r.formatRate(row.VisitToPurchaseRate),
		})
	}
	table.Render()

	return buf.String()
}

func (r *Reporter) RenderAbTestSummary(rows []*analytics.AbTestSummaryRow) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Test", "Variant", "Sessions", "Checkouts", "Purchases", "Checkout→Purchase"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, row := range rows {
		table.Append([]string{
			row.AbTestId,
			row.Variant,
			fmt.Sprintf("%d", row.Sessions),
			fmt.Sprintf("%d", row.CheckoutSessions),
			fmt.Sprintf("%d", row.PurchaseSessions),
			r.formatRate(row.CheckoutToPurchaseRate),
		})
	}
	table.Render()

	return buf.String()
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
