package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

const corpCodeXMLName = "CORPCODE.xml"

// corpCodeResult mirrors the XML document inside the corpCode.xml archive.
// The dump also carries a modify_date per row, which is not used.
type corpCodeResult struct {
	XMLName xml.Name      `xml:"result"`
	List    []corpCodeRow `xml:"list"`
}

type corpCodeRow struct {
	CorpCode  string `xml:"corp_code"`
	CorpName  string `xml:"corp_name"`
	StockCode string `xml:"stock_code"`
}

// FetchCorpCodes downloads the bulk registry code dump and parses it into
// table rows. The response is a ZIP archive decoded in memory; no temp file
// is written. Rows without a stock code (unlisted entities) are dropped and
// registry codes are normalized to 8 zero-padded digits.
func (c *Client) FetchCorpCodes(ctx context.Context, apiKey string) ([]CorpCodeEntry, error) {
	url := fmt.Sprintf("%s/corpCode.xml?crtfc_key=%s", c.openAPIBase, apiKey)

	body, err := c.fetchURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corp code archive: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open corp code archive: %w", err)
	}

	var xmlFile *zip.File
	for _, f := range zr.File {
		if f.Name == corpCodeXMLName {
			xmlFile = f
			break
		}
	}
	if xmlFile == nil {
		return nil, fmt.Errorf("%s not found in archive", corpCodeXMLName)
	}

	rc, err := xmlFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", corpCodeXMLName, err)
	}
	defer rc.Close()

	var result corpCodeResult
	if err := xml.NewDecoder(rc).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", corpCodeXMLName, err)
	}

	entries := make([]CorpCodeEntry, 0, len(result.List))
	for _, row := range result.List {
		stock := strings.TrimSpace(row.StockCode)
		if stock == "" {
			continue
		}
		code, err := NewCorpCode(row.CorpCode)
		if err != nil {
			// A malformed row in the dump should not poison the table.
			fmt.Printf("Warning: skipping registry row for %q: %v\n", row.CorpName, err)
			continue
		}
		entries = append(entries, CorpCodeEntry{
			CorpName:  strings.TrimSpace(row.CorpName),
			CorpCode:  code,
			StockCode: stock,
		})
	}

	return entries, nil
}
