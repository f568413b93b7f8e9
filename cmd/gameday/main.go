package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrander/gameday/internal/backfill"
	"github.com/chrander/gameday/internal/config"
	"github.com/chrander/gameday/internal/ingest/gameday"
	"github.com/chrander/gameday/internal/store"
	"github.com/chrander/gameday/internal/store/repository"
)

var (
	flagConfig         string
	flagDSN            string
	flagWorkers        int
	flagSpringTraining bool
	flagDryRun         bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gameday",
		Short:         "Ingest MLB GameDay data into a relational store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a yaml config file")
	root.PersistentFlags().StringVar(&flagDSN, "dsn", "", "Database DSN (overrides config file and GAMEDAY_DSN)")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newStatsCmd())

	return root
}

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <start-date> [end-date]",
		Short: "Ingest games for a date range (dates are yyyy-mm-dd, inclusive)",
		Long: `Ingest fetches the GameDay scoreboard for every date in the range and
stores each completed game's at-bats, pitches, players, and hits in play.
With a single date, only that day is ingested. Re-running a range is safe:
games and players already in the store are skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runIngest,
	}

	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent game workers (0 uses the config value)")
	cmd.Flags().BoolVar(&flagSpringTraining, "spring-training", false, "Also ingest spring training and exhibition games")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Validate the run without writing to the database")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("invalid start date %q (want yyyy-mm-dd): %w", args[0], err)
	}
	end := start
	if len(args) == 2 {
		end, err = time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid end date %q (want yyyy-mm-dd): %w", args[1], err)
		}
	}

	if !flagDryRun {
		db, err := store.Connect(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		if err := db.EnsureSchema(); err != nil {
			db.Close()
			return fmt.Errorf("ensuring schema: %w", err)
		}
		db.Close()
	}

	fetcher := gameday.NewClient(cfg.GameDay.BaseURL, cfg.GameDay.Timeout)
	openGateway := func(ctx context.Context) (gameday.Gateway, error) {
		return repository.OpenSession(cfg.Database.DSN)
	}

	workers := cfg.Ingest.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}

	spec := backfill.JobSpec{
		Start:                 start,
		End:                   end,
		Workers:               workers,
		IncludeSpringTraining: flagSpringTraining || cfg.Ingest.SpringTraining,
		DryRun:                flagDryRun,
	}

	runner := backfill.NewRunner(fetcher, openGateway)
	summary, err := runner.Run(cmd.Context(), spec, &consoleReporter{})
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts per entity kind",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Connect(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	counts, err := repository.NewStatsRepository(db).Counts(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading table counts: %w", err)
	}

	fmt.Println()
	fmt.Println("======================")
	fmt.Printf("%-12s %9s\n", "TABLE", "COUNT")
	fmt.Println("----------------------")
	fmt.Printf("%-12s %9d\n", "Games", counts.Games)
	fmt.Printf("%-12s %9d\n", "At Bats", counts.AtBats)
	fmt.Printf("%-12s %9d\n", "Hits in Play", counts.HitsInPlay)
	fmt.Printf("%-12s %9d\n", "Pitches", counts.Pitches)
	fmt.Printf("%-12s %9d\n", "Players", counts.Players)
	fmt.Println("======================")
	fmt.Println()

	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDSN != "" {
		cfg.Database.DSN = flagDSN
	}
	return cfg, nil
}

func printSummary(summary backfill.Summary) {
	fmt.Printf("Processed %d games across %d dates: %d ingested, %d already present, %d not final, %d exhibition skipped, %d failed\n",
		summary.Games, summary.Dates, summary.Ingested, summary.AlreadyPresent,
		summary.NotFinal, summary.ExhibitionSkipped, summary.Failed)
}

// consoleReporter logs run progress the same way the runner logs errors.
type consoleReporter struct{}

func (c *consoleReporter) OnRunStart(spec backfill.JobSpec) {
	log.Printf("Starting ingest (workers=%d, spring_training=%v, dry_run=%v)",
		spec.Workers, spec.IncludeSpringTraining, spec.DryRun)
}

func (c *consoleReporter) OnDateStart(date time.Time, index int, total int) {
	log.Printf("[%d/%d] %s", index+1, total, date.Format("2006-01-02"))
}

func (c *consoleReporter) OnGameDone(gamedayID string, outcome gameday.Outcome) {
	log.Printf("Game %s: %s", gamedayID, outcome)
}

func (c *consoleReporter) OnRunComplete(summary backfill.Summary) {
	log.Printf("Ingest complete (%d games across %d dates)", summary.Games, summary.Dates)
}
