package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"josephlewis.net/smallsh/core"
)

// runCmd starts the interactive shell.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		recorder, err := core.OpenRecorder(configuration)
		if err != nil {
			// The shell is still usable without its session log.
			log.Printf("Session logging disabled: %v", err)
			recorder = nil
		}

		return core.NewShell(configuration, recorder).Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
