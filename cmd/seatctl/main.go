// Command seatctl runs operator tasks against the seat reservation database.
//
//	seatctl migrate [-down]
//	seatctl generate-seats [-event ID] [-rows ABCDEFGHIJ] [-per-row 12]
//	seatctl issue-token -user ID [-email E] [-ttl 24h]
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"seatreservation/config"
	"seatreservation/internal/adapters/auth"
	"seatreservation/internal/domain"
	"seatreservation/internal/repository/postgres"
	"seatreservation/internal/services"

	_ "github.com/lib/pq"
)

var errUsage = errors.New("usage: seatctl <migrate|generate-seats|issue-token> [flags]")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, cfg, config.NewLogger()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "migrate":
		return runMigrate(rest, out, cfg)
	case "generate-seats":
		return runGenerateSeats(ctx, rest, out, cfg, logger)
	case "issue-token":
		return runIssueToken(rest, out, cfg)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func runMigrate(args []string, out io.Writer, cfg *config.Config) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	down := fs.Bool("down", false, "Roll back the most recent migration instead of applying pending ones")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openDB(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if *down {
		if err := postgres.MigrateDown(db); err != nil {
			return err
		}
		fmt.Fprintln(out, "Most recent migration rolled back.")
		return nil
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(out, "All migrations completed successfully!")
	return nil
}

func runGenerateSeats(ctx context.Context, args []string, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	fs := flag.NewFlagSet("generate-seats", flag.ContinueOnError)
	fs.SetOutput(out)
	eventID := fs.String("event", "", "Only generate seats for this event ID (default: every event)")
	rows := fs.String("rows", domain.DefaultSeatRows, "Row labels, one letter per row")
	perRow := fs.Int("per-row", domain.DefaultSeatsPerRow, "Seats per row")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := services.NewProvisioningService(postgres.NewEventRepository(db), postgres.NewSeatRepository(db), logger)
	report, err := svc.GenerateSeats(ctx, *eventID, *rows, *perRow)
	if err != nil {
		return err
	}
	printReport(out, report)
	return nil
}

func printReport(out io.Writer, report *domain.ProvisioningReport) {
	for _, id := range sortedKeys(report.Created) {
		fmt.Fprintf(out, "event %s: created %d seats\n", id, report.Created[id])
	}
	for _, id := range sortedKeys(report.Skipped) {
		fmt.Fprintf(out, "event %s: skipped, already has %d seats\n", id, report.Skipped[id])
	}
	fmt.Fprintf(out, "total seats created: %d\n", report.Total)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runIssueToken(args []string, out io.Writer, cfg *config.Config) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	fs.SetOutput(out)
	userID := fs.String("user", "", "User ID to put in the token subject (required)")
	email := fs.String("email", "", "Email claim")
	ttl := fs.Duration("ttl", 24*time.Hour, "Token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("issue-token: -user is required: %w", errUsage)
	}
	if *ttl <= 0 {
		return fmt.Errorf("issue-token: -ttl must be positive")
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *email, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}
