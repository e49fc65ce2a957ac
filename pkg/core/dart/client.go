// Package dart provides a client for the DART (opendart.fss.or.kr) open
// disclosure API and the dart.fss.or.kr report viewer.
//
// Three endpoints are used:
//   - corpCode.xml: bulk registry code dump, a ZIP archive holding one XML file
//   - list.json: filing listing search with date window and report type filters
//   - dsaf001/main.do: the report viewer page, saved verbatim as HTML
package dart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	userAgent = "dart-disclosure-pipeline/1.0"

	openAPIBaseURL = "https://opendart.fss.or.kr/api"
	viewerBaseURL  = "https://dart.fss.or.kr"

	// Courtesy pacing between requests. DART publishes no hard rate limit
	// for these endpoints; half a second between calls keeps well clear of
	// its informal expectations.
	requestInterval = 500 * time.Millisecond
)

// Client handles DART API requests. All requests share one rate limiter so
// document downloads within a company are paced.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter

	openAPIBase string
	viewerBase  string
}

// NewClient creates a DART API client with a 30s request timeout.
func NewClient() *Client {
	return &Client{
		client:      &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(requestInterval), 1),
		openAPIBase: openAPIBaseURL,
		viewerBase:  viewerBaseURL,
	}
}

// WithBaseURLs overrides the API hosts. Used by tests.
func (c *Client) WithBaseURLs(openAPI, viewer string) *Client {
	c.openAPIBase = openAPI
	c.viewerBase = viewer
	return c
}

// WithLimiter replaces the request pacer. Used by tests.
func (c *Client) WithLimiter(l *rate.Limiter) *Client {
	c.limiter = l
	return c
}

func (c *Client) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/zip, text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
