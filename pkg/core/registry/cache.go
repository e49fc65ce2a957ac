// Package registry maintains the local cache of DART registry codes.
//
// The bulk corpCode dump is large and changes rarely, so it is fetched once
// per environment and persisted as a CSV file. The code columns are
// numeric-looking strings and must stay text end to end, or leading zeros
// are lost; CorpCode enforces the 8-digit invariant on every load.
package registry

import (
	"context"
	"dart_disclosure/pkg/core/dart"
	"encoding/csv"
	"fmt"
	"os"
)

// DefaultPath is the cache file location relative to the working directory.
const DefaultPath = "corp_code.csv"

var csvHeader = []string{"corp_name", "corp_code", "stock_code"}

// Cache loads the registry code table from a local CSV file, building it
// from the DART bulk endpoint on a miss.
type Cache struct {
	path   string
	client *dart.Client
}

// NewCache creates a cache backed by the given file path.
func NewCache(path string, client *dart.Client) *Cache {
	if path == "" {
		path = DefaultPath
	}
	return &Cache{path: path, client: client}
}

// Get returns the registry table, from the cache file if present, otherwise
// by downloading and persisting the bulk dump. A cache hit issues no network
// call.
func (c *Cache) Get(ctx context.Context, apiKey string) ([]dart.CorpCodeEntry, error) {
	if _, err := os.Stat(c.path); err == nil {
		fmt.Printf("Using existing registry cache %s\n", c.path)
		return c.Load()
	}

	fmt.Printf("Registry cache %s not found, downloading from DART...\n", c.path)
	return c.Build(ctx, apiKey)
}

// Load reads the cache file. Both code columns are read as text.
func (c *Cache) Load() ([]dart.CorpCodeEntry, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry cache: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read registry cache: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("registry cache %s is empty", c.path)
	}

	entries := make([]dart.CorpCodeEntry, 0, len(records)-1)
	for i, rec := range records[1:] { // skip header
		if len(rec) != 3 {
			return nil, fmt.Errorf("registry cache %s: row %d has %d columns, want 3", c.path, i+2, len(rec))
		}
		code, err := dart.NewCorpCode(rec[1])
		if err != nil {
			return nil, fmt.Errorf("registry cache %s: row %d: %w", c.path, i+2, err)
		}
		entries = append(entries, dart.CorpCodeEntry{
			CorpName:  rec[0],
			CorpCode:  code,
			StockCode: rec[2],
		})
	}

	return entries, nil
}

// Build downloads the bulk dump, persists it and returns the parsed table.
func (c *Cache) Build(ctx context.Context, apiKey string) ([]dart.CorpCodeEntry, error) {
	entries, err := c.client.FetchCorpCodes(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if err := c.save(entries); err != nil {
		return nil, err
	}

	fmt.Printf("Saved %d registry entries to %s\n", len(entries), c.path)
	return entries, nil
}

func (c *Cache) save(entries []dart.CorpCodeEntry) error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("failed to create registry cache: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write registry cache: %w", err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.CorpName, e.CorpCode.String(), e.StockCode}); err != nil {
			f.Close()
			return fmt.Errorf("failed to write registry cache: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush registry cache: %w", err)
	}

	return f.Close()
}
