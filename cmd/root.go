package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trailhead-labs/funnelcast/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "funnelcast",
	Short: "funnelcast turns raw e-commerce clickstream data into funnel, cohort and retention analytics",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	initConfig(rootCmd)

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)

	rootCmd.PersistentFlags().String(config.DatabasePath, "analytics.db", `Path to the embedded analytics database file`)
	rootCmd.PersistentFlags().String(config.DataDir, "data/raw", `Directory containing users.csv, events.csv and orders.csv`)
	rootCmd.PersistentFlags().String(config.ExportOutputDir, "data/exports", `Directory to write exported CSV files to`)

	rootCmd.PersistentFlags().Int(config.SessionInactivityMinutes, 30, `Inactivity gap in minutes that starts a new session`)

	rootCmd.PersistentFlags().Bool(config.DataDogStatsdEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().String(config.DataDogStatsdUrl, "", `e.g. "localhost:8125"`)
	rootCmd.PersistentFlags().Float64(config.DataDogStatsdSampleRate, 1.0, `The sample rate to use for statsd metrics`)

	// setup sub commands
	rootCmd.AddCommand(loadDataCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runVersionCmd)

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}
