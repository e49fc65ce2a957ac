// Package reports downloads annual business report documents from DART and
// persists them under the output directory. File existence on disk is the
// only idempotence state; a report already present is never re-downloaded
// or overwritten.
package reports

import (
	"context"
	"dart_disclosure/pkg/core/dart"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultYears is the trailing window (and download cap) for annual reports.
const DefaultYears = 3

// Fetcher downloads the most recent annual reports for one company at a time.
type Fetcher struct {
	client    *dart.Client
	outputDir string
	years     int
}

// NewFetcher creates a report fetcher writing into outputDir. years bounds
// both the search window and the number of new downloads per company.
func NewFetcher(client *dart.Client, outputDir string, years int) *Fetcher {
	if years <= 0 {
		years = DefaultYears
	}
	return &Fetcher{client: client, outputDir: outputDir, years: years}
}

// FetchAnnual searches the trailing window for annual business reports and
// downloads up to years new documents, newest first. Reports already on disk
// are skipped and do not count toward the cap.
//
// A business-level API error or an empty result is logged and absorbed: the
// company simply yields no downloads. Only transport failures are returned,
// and the caller isolates those per company.
func (f *Fetcher) FetchAnnual(ctx context.Context, apiKey string, corp dart.CorpCode, companyName string) error {
	fmt.Printf("\n[%s] Searching annual reports...\n", companyName)

	now := time.Now()
	begin := time.Date(now.Year()-f.years, time.January, 1, 0, 0, 0, 0, now.Location())

	filings, err := f.client.FetchFilings(ctx, apiKey, corp, begin, now)
	if err != nil {
		var apiErr *dart.APIError
		if errors.As(err, &apiErr) {
			fmt.Printf("  - %v\n", apiErr)
			return nil
		}
		return fmt.Errorf("failed to list filings for %s: %w", companyName, err)
	}

	if len(filings) == 0 {
		fmt.Println("  - No annual reports filed in the window")
		return nil
	}

	if !newestFirst(filings) {
		// The cap-by-count selection below assumes API order is
		// newest-first; if DART ever changes that, the selected set
		// would silently be wrong.
		fmt.Println("  - Warning: listing is not in descending date order")
	}

	downloaded := 0
	for _, filing := range filings {
		if downloaded >= f.years {
			break
		}

		filename := Filename(companyName, filing.Year())
		path := filepath.Join(f.outputDir, filename)

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("  - %s already exists\n", filename)
			continue
		}

		fmt.Printf("  - Downloading %s\n", filename)
		html, err := f.client.FetchDocument(ctx, filing.RceptNo)
		if err != nil {
			return fmt.Errorf("failed to download report %s for %s: %w", filing.RceptNo, companyName, err)
		}

		if err := os.WriteFile(path, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		downloaded++
	}

	return nil
}

// Filename builds the deterministic output name for a company's annual
// report of a given filing year.
func Filename(companyName, year string) string {
	return fmt.Sprintf("[%s]_[%s년도공시]_사업보고서.html", companyName, year)
}

func newestFirst(filings []dart.Filing) bool {
	for i := 1; i < len(filings); i++ {
		if filings[i].RceptDt > filings[i-1].RceptDt {
			return false
		}
	}
	return true
}
