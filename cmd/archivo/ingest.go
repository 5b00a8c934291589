package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ternarybob/archivo/internal/app"
)

const dateLayout = "02/01/2006"

var (
	ingestFrom string
	ingestTo   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and archive invoice emails for a date range",
	Long:  `Fetches mailbox messages received in the given date range (inclusive, dd/mm/yyyy), picks the invoice PDF from each, extracts its attributes and archives it. Without flags it ingests today's messages.`,
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFrom, "from", "", "Start date dd/mm/yyyy (default: today)")
	ingestCmd.Flags().StringVar(&ingestTo, "to", "", "End date dd/mm/yyyy (default: today)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	from, to, err := resolveDateRange(ingestFrom, ingestTo)
	if err != nil {
		return err
	}

	application, err := app.New(config)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	summary, err := application.Pipeline.Run(context.Background(), from, to)
	if err != nil {
		return err
	}

	fmt.Printf("Matched:     %d\n", summary.Matched)
	fmt.Printf("Stored:      %d\n", summary.Stored)
	fmt.Printf("Without PDF: %d\n", summary.WithoutPDF)
	fmt.Printf("Failed:      %d\n", summary.Failed)

	return nil
}

// resolveDateRange parses the --from/--to flags, defaulting both to today
func resolveDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from, to := now, now

	var err error
	if fromStr != "" {
		from, err = time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q, expected dd/mm/yyyy", fromStr)
		}
	}
	if toStr != "" {
		to, err = time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q, expected dd/mm/yyyy", toStr)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to date is before --from date")
	}

	return from, to, nil
}
