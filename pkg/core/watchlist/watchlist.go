// Package watchlist defines the fixed set of companies the pipeline tracks
// and resolves their tickers to DART registry codes.
package watchlist

import (
	"dart_disclosure/pkg/core/dart"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Entry is one tracked company: a display name and its stock ticker.
type Entry struct {
	Name      string `yaml:"name"`
	StockCode string `yaml:"stock_code"`
}

// Company is a watch-list entry joined with its registry code.
type Company struct {
	Name      string
	StockCode string
	CorpCode  dart.CorpCode
}

// Default returns the built-in watch-list: the top 10 KOSPI companies by
// market cap (as of October 2025).
func Default() []Entry {
	return []Entry{
		{Name: "삼성전자", StockCode: "005930"},
		{Name: "SK하이닉스", StockCode: "000660"},
		{Name: "LG에너지솔루션", StockCode: "373220"},
		{Name: "삼성바이오로직스", StockCode: "207940"},
		{Name: "현대차", StockCode: "005380"},
		{Name: "LG화학", StockCode: "051910"},
		{Name: "기아", StockCode: "000270"},
		{Name: "셀트리온", StockCode: "068270"},
		{Name: "POSCO홀딩스", StockCode: "005490"},
		{Name: "NAVER", StockCode: "035420"},
	}
}

// LoadFile reads a YAML watch-list override file: a list of
// {name, stock_code} pairs.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch-list: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse watch-list: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("watch-list %s has no entries", path)
	}
	for i, e := range entries {
		if e.Name == "" || e.StockCode == "" {
			return nil, fmt.Errorf("watch-list %s: entry %d missing name or stock_code", path, i+1)
		}
	}

	return entries, nil
}

// Resolve joins the watch-list against the registry table on stock code.
// Entries whose ticker is absent from the table come back in unresolved;
// they are reported by the caller and excluded from fetching, never fatal.
// Resolved companies keep watch-list order.
func Resolve(entries []Entry, registry []dart.CorpCodeEntry) (resolved []Company, unresolved []Entry) {
	byStock := make(map[string]dart.CorpCodeEntry, len(registry))
	for _, e := range registry {
		byStock[e.StockCode] = e
	}

	for _, w := range entries {
		reg, ok := byStock[w.StockCode]
		if !ok {
			unresolved = append(unresolved, w)
			continue
		}
		resolved = append(resolved, Company{
			Name:      w.Name,
			StockCode: w.StockCode,
			CorpCode:  reg.CorpCode,
		})
	}

	return resolved, unresolved
}
