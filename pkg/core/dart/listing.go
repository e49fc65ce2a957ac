package dart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// Disclosure type filters for the listing endpoint: periodic
	// disclosures ("A"), annual business report subtype ("A001").
	pblntfTypePeriodic = "A"
	pblntfDetailAnnual = "A001"

	dateFormat = "20060102"
)

type listResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	List    []Filing `json:"list"`
}

// FetchFilings queries the listing endpoint for annual business reports
// filed by the company within [begin, end].
//
// Filings are returned in API order, which DART serves newest-first; callers
// relying on "most recent N" selection depend on that ordering. A non-"000"
// status in the response body is returned as *APIError.
func (c *Client) FetchFilings(ctx context.Context, apiKey string, corp CorpCode, begin, end time.Time) ([]Filing, error) {
	url := fmt.Sprintf("%s/list.json?crtfc_key=%s&corp_code=%s&bgn_de=%s&end_de=%s&pblntf_ty=%s&pblntf_detail_ty=%s",
		c.openAPIBase, apiKey, corp,
		begin.Format(dateFormat), end.Format(dateFormat),
		pblntfTypePeriodic, pblntfDetailAnnual)

	body, err := c.fetchURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filing list: %w", err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse filing list: %w", err)
	}

	if resp.Status != StatusOK {
		return nil, &APIError{Code: resp.Status, Message: resp.Message}
	}

	return resp.List, nil
}
