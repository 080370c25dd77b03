package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
	"github.com/trailhead-labs/funnelcast/pkg/report"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the retention matrix, funnel summary and A/B test summary to the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, l, sink, grm := setupCommand()

		calculator := analytics.NewAnalyticsCalculator(l, grm, cfg, sink)
		reporter := report.NewReporter(isatty.IsTerminal(os.Stdout.Fd()))

		retention, err := calculator.ListCohortRetentionView()
		if err != nil {
			l.Sugar().Fatalw("Failed to load retention data; run 'funnelcast run' first", zap.Error(err))
		}
		funnel, err := calculator.ListFunnelMetrics()
		if err != nil {
			l.Sugar().Fatalw("Failed to load funnel metrics; run 'funnelcast run' first", zap.Error(err))
		}
		abTests, err := calculator.ListAbTestSummary()
		if err != nil {
			l.Sugar().Fatalw("Failed to load ab test summary; run 'funnelcast run' first", zap.Error(err))
		}

		fmt.Println("Cohort retention")
		fmt.Println(reporter.RenderRetentionMatrix(retention))
		fmt.Println("Funnel conversion by source/device/day")
		fmt.Println(reporter.RenderFunnelSummary(funnel))
		fmt.Println("A/B test summary")
		fmt.Println(reporter.RenderAbTestSummary(abTests))
	},
}
