package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"softmatrices_site_go/config"
	"softmatrices_site_go/db"
	"softmatrices_site_go/services"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dbPath   string
	database *gorm.DB
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "relay-events",
		Short:        "Inspect and maintain recorded contact relay events",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if database != nil {
				return nil
			}
			if dbPath == "" {
				dbPath = config.Load().DBPath
			}
			if dbPath == "" {
				return fmt.Errorf("no database: pass --db or set DB_PATH")
			}
			if err := db.Initialize(dbPath, "production"); err != nil {
				return err
			}
			database = db.DB
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "relay event database (default $DB_PATH)")

	root.AddCommand(listCmd(), statsCmd(), exportCmd(), purgeCmd())
	return root
}

func listCmd() *cobra.Command {
	var (
		outcome string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent relay events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, total, err := services.ListRelayEvents(database, services.RelayEventFilters{Outcome: outcome}, 1, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tOUTCOME\tSTATUS\tUPSTREAM\tMS\tFIELDS")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
					e.CreatedAt.UTC().Format(time.RFC3339), e.Outcome, e.StatusCode, e.UpstreamStatus, e.DurationMs, e.Fields)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d events\n", len(events), total)
			return nil
		},
	}
	cmd.Flags().StringVar(&outcome, "outcome", "", "only show this outcome (e.g. transport_failure)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum events to show")
	return cmd
}

func statsCmd() *cobra.Command {
	var since time.Duration
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count relay events by outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := services.CountRelayEventsByOutcome(database, time.Now().Add(-since))
			if err != nil {
				return err
			}
			for _, c := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %d\n", c.Outcome, c.Count)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "look back this far")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		out   string
		since time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export relay events to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := services.RelayEventFilters{}
			if since > 0 {
				filters.DateFrom = time.Now().Add(-since)
			}
			events, total, err := services.ListRelayEvents(database, filters, 1, 1_000_000)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := services.ExportRelayEventsXLSX(events, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d events to %s\n", len(events), total, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "relay-events.xlsx", "output file")
	cmd.Flags().DurationVar(&since, "since", 0, "only export events newer than this (0 = all)")
	return cmd
}

func purgeCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete relay events older than a duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			removed, err := services.PurgeRelayEvents(database, time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d events\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "age cutoff")
	return cmd
}
