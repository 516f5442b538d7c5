package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/spf13/cobra"
)

var migrateList bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply the embedded SQL migrations that have not yet run against DATABASE_URL.`,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateList, "list", false, "Show the status of each migration without applying any")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if migrateList {
		states, err := database.MigrationStatus(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tFILE\tAPPLIED AT")
		for _, st := range states {
			applied := "pending"
			if st.Applied {
				applied = st.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", st.Version, st.Path, applied)
		}
		return tw.Flush()
	}

	if err := database.Migrate(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

// connectDB opens DATABASE_URL for the maintenance subcommands.
func connectDB(cmd *cobra.Command) (*db.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return db.Connect(cmd.Context(), databaseURL)
}
