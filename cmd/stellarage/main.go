// Command stellarage runs the Stellar Age simulation server and its
// inspection tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "stellarage",
		Short: "Stellar Age autonomous strategy simulation",
		Long: `Stellar Age runs a self-playing turn-based strategy game: civilizations
found cities, research technologies, adopt policies, arm their units, and
found religions, round after round, with an HTTP API for watching the board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFlag, "config", "c", "", "Path to config file (default: nearest configs/stellarage.yml)")

	rootCmd.AddCommand(runCmd(), inspectCmd(), defsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
