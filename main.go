// Command quickchat runs the translating one-to-one chat server and its
// small set of operator commands.
//
// Wiring is split across the init_*.go files; nothing lives in package-level
// state. Every command loads its configuration from the environment (and an
// optional .env file).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quickchat",
		Short: "QuickChat - one-to-one chat with per-reader translation",
		Long: `QuickChat delivers messages over WebSocket and translates each one into the
reader's preferred language. The original text is always what gets stored.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newUsersCommand(),
		newTokenCommand(),
		newLanguagesCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
