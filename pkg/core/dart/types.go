package dart

import (
	"fmt"
	"strings"
)

// CorpCode is the 8-digit registry identifier DART assigns to a corporate
// entity. It is distinct from the public stock ticker and is always
// zero-padded to 8 characters.
type CorpCode string

// NewCorpCode validates and normalizes a raw registry code.
// Numeric strings shorter than 8 characters are zero-padded on the left,
// matching the format of the bulk CORPCODE dump.
func NewCorpCode(raw string) (CorpCode, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty corp code")
	}
	if len(s) > 8 {
		return "", fmt.Errorf("corp code %q longer than 8 digits", raw)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("corp code %q is not numeric", raw)
		}
	}
	return CorpCode(fmt.Sprintf("%08s", s)), nil
}

func (c CorpCode) String() string {
	return string(c)
}

// CorpCodeEntry is one row of the registry code table: a company name, its
// registry code and its stock ticker. Entries without a ticker (unlisted
// entities) are dropped before the table is used.
type CorpCodeEntry struct {
	CorpName  string
	CorpCode  CorpCode
	StockCode string
}

// Filing is a single disclosure returned by the listing endpoint. Only the
// receipt number and filing date are needed downstream; the report name is
// kept for diagnostics.
type Filing struct {
	RceptNo  string `json:"rcept_no"`
	RceptDt  string `json:"rcept_dt"` // YYYYMMDD
	ReportNm string `json:"report_nm"`
	CorpName string `json:"corp_name"`
}

// Year returns the filing year, derived from the first 4 characters of the
// filing date.
func (f Filing) Year() string {
	if len(f.RceptDt) < 4 {
		return f.RceptDt
	}
	return f.RceptDt[:4]
}

// API status codes returned in the body of listing responses.
const (
	StatusOK     = "000"
	StatusNoData = "013"
)

// APIError is a business-level error reported by the DART API itself
// (non-"000" status in an otherwise successful HTTP response). Callers
// treat it as "no data available", not as a transport failure.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DART API error %s: %s", e.Code, e.Message)
}

// NoData reports whether the error is the "no search results" status.
func (e *APIError) NoData() bool {
	return e.Code == StatusNoData
}
