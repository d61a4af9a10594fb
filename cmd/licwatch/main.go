// cmd/licwatch/main.go
//
// This is the entry point for the licwatch CLI.
//
// Flow:
// 1. Parse flags, load the YAML config, apply environment overrides
// 2. Fetch organizations and their licensing data from the dashboard
// 3. Normalize and sort the license records
// 4. Write the dated xlsx workbook

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrea/licwatch/internal/config"
	"github.com/kingrea/licwatch/internal/console"
	"github.com/kingrea/licwatch/internal/dashboard"
	"github.com/kingrea/licwatch/internal/logging"
	"github.com/kingrea/licwatch/internal/report"
	"github.com/kingrea/licwatch/internal/xlsx"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	outDir := flag.String("out", "", "directory for the xlsx artifact (overrides config)")
	orgFilter := flag.String("org", "", "only include organizations fuzzy-matching this name")
	plain := flag.Bool("plain", false, "disable styled console output")
	verbose := flag.Bool("verbose", false, "log at debug level")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("licwatch %s\n", version)
		return
	}

	// A local .env may carry the API key; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		die("load config: %v", err)
	}
	if *outDir != "" {
		cfg.Report.OutputDir = *outDir
	}

	level := cfg.Log.Level
	if *verbose || cfg.Console.Verbose {
		level = "debug"
	}
	if err := logging.Init(level, cfg.Log.Path); err != nil {
		die("init logging: %v", err)
	}
	defer logging.Sync()

	ui := console.New(*plain || cfg.Console.Plain)
	if err := run(context.Background(), cfg, ui, *orgFilter); err != nil {
		logging.L().Errorw("run aborted", "error", err)
		// die exits without running defers, so flush here.
		logging.Sync()
		die("licwatch: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, ui *console.Console, orgFilter string) error {
	// While the styled progress bar owns the terminal, ctrl+c arrives as
	// a key rather than a signal, so the tracker carries the cancel func.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	start := time.Now()
	now := start.UTC()

	ui.Banner("Meraki License Report")

	client := dashboard.New(cfg.API.BaseURL, cfg.API.Key,
		dashboard.WithTimeout(cfg.Timeout()),
		dashboard.WithMaxRetries(cfg.MaxRetries()),
		dashboard.WithLogger(logging.L()),
	)

	ui.Step(1, "Fetching organizations")
	orgs, err := client.Organizations(ctx)
	if err != nil {
		return err
	}
	if orgFilter != "" {
		matched := filterOrgs(orgs, orgFilter)
		logging.L().Infow("filtered organizations",
			"pattern", orgFilter, "matched", len(matched), "total", len(orgs))
		orgs = matched
	}
	ui.Printf("Found %d organizations", len(orgs))

	ui.Step(2, "Collecting license data")
	coterm, perDevice, err := report.Dispatch(ctx, orgs, client, now, ui.Progress(cancel))
	if err != nil {
		return err
	}

	ui.Step(3, "Writing report")
	if err := report.SortCoTerm(coterm); err != nil {
		return err
	}
	for i := range perDevice {
		if err := report.SortDevices(perDevice[i].Records); err != nil {
			return err
		}
	}
	rep := report.Assemble(coterm, perDevice)
	path := filepath.Join(cfg.Report.OutputDir, report.ArtifactName(now))
	if err := xlsx.Write(rep, path); err != nil {
		return err
	}

	ui.Successf("Report written to %s", path)
	logging.L().Infow("report written",
		"path", path,
		"coterm_orgs", len(coterm),
		"per_device_orgs", len(perDevice),
		"elapsed", time.Since(start),
	)
	return nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
