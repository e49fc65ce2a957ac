// Inspect lists downloaded DART reports with their document titles.
//
// Usage: inspect [dir]   (default: dart_reports)
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func main() {
	dir := "dart_reports"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", dir, err)
	}
	if len(matches) == 0 {
		fmt.Printf("No reports found under %s\n", dir)
		return
	}

	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("%-60s (unreadable: %v)\n", filepath.Base(path), err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(f)
		f.Close()
		if err != nil {
			fmt.Printf("%-60s (unparseable: %v)\n", filepath.Base(path), err)
			continue
		}

		title := strings.TrimSpace(doc.Find("title").First().Text())
		if title == "" {
			title = "(no title)"
		}
		info, err := os.Stat(path)
		size := int64(0)
		if err == nil {
			size = info.Size()
		}

		fmt.Printf("%-60s %9d bytes  %s\n", filepath.Base(path), size, title)
	}
}
