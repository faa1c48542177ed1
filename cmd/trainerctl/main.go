// Command trainerctl runs maintenance tasks against the trainerhub database.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "trainerctl",
		Short: "Operational tooling for trainerhub",
		Long: `trainerctl works on the database named by DATABASE_URL (or .env).

Use it to migrate the schema, load demo data, batch pending trainer payouts,
purge expired feedback links and print revenue reports.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newPayoutsCmd(),
		newFeedbackCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stderr)
}
