package dart

import (
	"context"
	"fmt"
)

// FetchDocument downloads the full report viewer page for a filing receipt
// number. The HTML is returned verbatim; no content validation is attempted.
func (c *Client) FetchDocument(ctx context.Context, rceptNo string) (string, error) {
	url := fmt.Sprintf("%s/dsaf001/main.do?rcpNo=%s", c.viewerBase, rceptNo)

	body, err := c.fetchURL(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch report %s: %w", rceptNo, err)
	}

	return string(body), nil
}
