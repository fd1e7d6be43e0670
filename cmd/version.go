package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "devel"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shell version.",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		bold.Fprint(cmd.OutOrStdout(), "smallsh")
		fmt.Fprintf(cmd.OutOrStdout(), " %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
