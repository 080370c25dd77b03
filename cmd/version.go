package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trailhead-labs/funnelcast/internal/version"
)

var runVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of funnelcast",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version: %s\nCommit: %s\n", version.GetVersion(), version.GetCommit())
	},
}
