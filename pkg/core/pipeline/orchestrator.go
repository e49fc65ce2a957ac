// Package pipeline wires the registry cache, watch-list resolution and
// report fetching into one sequential run.
package pipeline

import (
	"context"
	"dart_disclosure/pkg/core/dart"
	"dart_disclosure/pkg/core/registry"
	"dart_disclosure/pkg/core/reports"
	"dart_disclosure/pkg/core/watchlist"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// DefaultOutputDir is where downloaded reports land.
const DefaultOutputDir = "dart_reports"

// RegistrySource yields the registry code table, from a local cache or the
// network. Implementations: registry.Cache, test fakes.
type RegistrySource interface {
	Get(ctx context.Context, apiKey string) ([]dart.CorpCodeEntry, error)
}

// ReportFetcher downloads annual reports for one resolved company.
// Implementations: reports.Fetcher, test fakes.
type ReportFetcher interface {
	FetchAnnual(ctx context.Context, apiKey string, corp dart.CorpCode, companyName string) error
}

// Config carries everything the pipeline needs at startup. There is no
// package-level mutable state; the zero value is filled with defaults by New.
type Config struct {
	APIKey    string
	OutputDir string
	CachePath string
	Years     int
	WatchList []watchlist.Entry
}

// Orchestrator runs the pipeline end to end: build the registry cache,
// resolve the watch-list, then fetch reports company by company. Strictly
// sequential, one thread of control.
type Orchestrator struct {
	cfg      Config
	registry RegistrySource
	fetcher  ReportFetcher
}

// New creates an orchestrator with live DART-backed dependencies.
func New(cfg Config) *Orchestrator {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.CachePath == "" {
		cfg.CachePath = registry.DefaultPath
	}
	if cfg.Years <= 0 {
		cfg.Years = reports.DefaultYears
	}
	if len(cfg.WatchList) == 0 {
		cfg.WatchList = watchlist.Default()
	}

	client := dart.NewClient()
	return &Orchestrator{
		cfg:      cfg,
		registry: registry.NewCache(cfg.CachePath, client),
		fetcher:  reports.NewFetcher(client, cfg.OutputDir, cfg.Years),
	}
}

// SetRegistry allows injecting a custom registry source (e.g., for testing).
func (o *Orchestrator) SetRegistry(r RegistrySource) {
	o.registry = r
}

// SetFetcher allows injecting a custom report fetcher (e.g., for testing).
func (o *Orchestrator) SetFetcher(f ReportFetcher) {
	o.fetcher = f
}

// Run executes one pipeline pass. A missing API key is a silent no-op, the
// only guard in the system. Per-company fetch failures are logged and never
// abort the remaining companies; a registry build failure skips all
// downstream work. Run itself returns an error only for setup problems
// (output directory creation).
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.cfg.APIKey == "" {
		return nil
	}

	runID := uuid.New().String()[:8]
	fmt.Printf("Starting DART report pipeline (run %s)...\n", runID)
	start := time.Now()

	if err := os.MkdirAll(o.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", o.cfg.OutputDir, err)
	}

	table, err := o.registry.Get(ctx, o.cfg.APIKey)
	if err != nil {
		fmt.Printf("Warning: registry code table unavailable: %v\n", err)
		fmt.Println("Skipping report downloads.")
		return nil
	}

	resolved, unresolved := watchlist.Resolve(o.cfg.WatchList, table)
	if len(unresolved) > 0 {
		fmt.Println("\nSome watch-list tickers are missing from the registry dump. Check the stock codes:")
		for _, e := range unresolved {
			fmt.Printf("  - %s (%s)\n", e.Name, e.StockCode)
		}
	}

	for _, company := range resolved {
		if err := o.fetcher.FetchAnnual(ctx, o.cfg.APIKey, company.CorpCode, company.Name); err != nil {
			fmt.Printf("Warning: failed to fetch reports for %s: %v\n", company.Name, err)
		}
	}

	fmt.Printf("\nPipeline completed (run %s) in %v\n", runID, time.Since(start))
	return nil
}
