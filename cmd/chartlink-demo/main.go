package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/chartlink/chartlink/internal/memcube"
	"github.com/chartlink/chartlink/internal/observability"
	"github.com/chartlink/chartlink/pkg/chartconfig"
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	configPath := flag.String("config", "", "path to a chart defaults YAML file")
	feedRate := flag.Float64("feed", 0, "simulated records per second (0 disables the feed)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "chartlink-demo - linked terminal charts\n\n")
		fmt.Fprintf(os.Stderr, "Charts over one dataset stay in sync: filtering one\n")
		fmt.Fprintf(os.Stderr, "redraws the others in its group.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  chartlink-demo [flags] [records.jsonl]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  [records.jsonl]       Optional JSON-lines file with state, year\n")
		fmt.Fprintf(os.Stderr, "                        and amount fields; omit for built-in data\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CHARTLINK_DEBUG       Enable debug logging (creates chartlink-demo.debug.log)\n")
	}

	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		return 1
	}

	// Sentry reporting.
	enableErrorReporting := true
	if os.Getenv("CHARTLINK_ERROR_REPORTING") != "" {
		enableErrorReporting, _ = strconv.ParseBool(os.Getenv("CHARTLINK_ERROR_REPORTING"))
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("CHARTLINK_SENTRY_DSN"),
		AttachStacktrace: true,
	})
	if err != nil || !enableErrorReporting {
		sentry.CurrentHub().BindClient(nil)
	}
	defer sentry.Flush(2 * time.Second)

	// Debug logging goes to a file so it does not fight the TUI.
	var writer io.Writer = io.Discard
	if os.Getenv("CHARTLINK_DEBUG") != "" {
		loggerFile, err := os.OpenFile(
			"chartlink-demo.debug.log",
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0644,
		)
		if err != nil {
			fmt.Println("fatal:", err)
			return 1
		}
		writer = loggerFile
		defer func() {
			_ = loggerFile.Close()
		}()
	}

	logger := observability.NewLogger(
		slog.New(slog.NewJSONHandler(
			writer,
			&slog.HandlerOptions{Level: slog.LevelDebug},
		)),
		&observability.Params{Hub: sentry.CurrentHub()},
	)

	fs := afero.NewOsFs()

	var cfg *chartconfig.Config
	if *configPath != "" {
		cfg, err = chartconfig.Load(fs, *configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	cube := memcube.New()
	if flag.NArg() == 1 {
		if err := loadRecords(fs, flag.Arg(0), cube); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		cube.Add(builtinRecords()...)
	}

	m, err := newModel(cube, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	if *feedRate > 0 {
		g.Go(func() error {
			return runFeed(ctx, p, *feedRate)
		})
	}

	if err := g.Wait(); err != nil {
		logger.CaptureError(fmt.Errorf("demo: %w", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadRecords(fs afero.Fs, path string, cube *memcube.Cube) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open records file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := memcube.LoadJSONLines(f)
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	cube.Add(records...)
	return nil
}

func builtinRecords() []memcube.Record {
	return []memcube.Record{
		{"state": "CA", "year": int64(2023), "amount": 12.0},
		{"state": "CA", "year": int64(2024), "amount": 20.0},
		{"state": "NY", "year": int64(2023), "amount": 5.0},
		{"state": "NY", "year": int64(2024), "amount": 9.0},
		{"state": "TX", "year": int64(2024), "amount": 7.0},
		{"state": "WA", "year": int64(2023), "amount": 3.0},
	}
}
