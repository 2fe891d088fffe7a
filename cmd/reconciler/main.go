package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/prospect-recon/internal/config"
	"github.com/prospect-recon/internal/db"
	"github.com/prospect-recon/internal/engine"
	"github.com/prospect-recon/internal/store"
)

var log = logrus.New()

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "reconciler",
		Short: "Prospect list reconciliation",
		Long:  `Reconciles a prospect spreadsheet export against the authoritative company table and emits the unmatched-row workbook and the UPDATE script`,
	}

	rootCmd.AddCommand(createReconcileCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createReconcileCmd creates the reconcile subcommand
func createReconcileCmd() *cobra.Command {
	var workbook, sheetName, notMatchPath, scriptPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation pass",
		Run: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			cfg := config.Default()
			if workbook != "" {
				cfg.WorkbookPath = workbook
			}
			if sheetName != "" {
				cfg.SheetName = sheetName
			}
			if notMatchPath != "" {
				cfg.NotMatchPath = notMatchPath
			}
			if scriptPath != "" {
				cfg.ScriptPath = scriptPath
			}

			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			pipeline := engine.NewPipeline(cfg, store.NewStore(conn.DB, cfg.UpdateTable), log)
			summary, err := pipeline.Run()
			if err != nil {
				log.Fatalf("Reconciliation failed: %v", err)
			}

			fmt.Printf("Processed %d rows: %d matched, %d unmatched\n",
				summary.TotalRows, summary.Matched, summary.Unmatched)
			fmt.Printf("Unmatched rows: %s\n", cfg.NotMatchPath)
			fmt.Printf("Update script:  %s\n", cfg.ScriptPath)
		},
	}

	cmd.Flags().StringVar(&workbook, "workbook", "", "Prospect workbook path (overrides PROSPECT_WORKBOOK)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (overrides PROSPECT_SHEET)")
	cmd.Flags().StringVar(&notMatchPath, "not-match", "", "Unmatched workbook output path")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Update script output path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			cfg := config.Default()
			count, err := store.NewStore(conn.DB, cfg.UpdateTable).Count()
			if err != nil {
				log.Fatalf("Failed to count companies: %v", err)
			}

			fmt.Println("Database connection successful!")
			fmt.Printf("Companies loaded: %d\n", count)
		},
	}
}
