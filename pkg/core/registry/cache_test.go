package registry

import (
	"archive/zip"
	"bytes"
	"context"
	"dart_disclosure/pkg/core/dart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"
)

const corpCodeXML = `<?xml version="1.0" encoding="UTF-8"?>
<result>
	<list>
		<corp_code>126380</corp_code>
		<corp_name>삼성전자</corp_name>
		<stock_code>005930</stock_code>
		<modify_date>20231201</modify_date>
	</list>
	<list>
		<corp_code>00164742</corp_code>
		<corp_name>SK하이닉스</corp_name>
		<stock_code>000660</stock_code>
		<modify_date>20231201</modify_date>
	</list>
</result>`

func bulkServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("CORPCODE.xml")
	if err != nil {
		t.Fatalf("failed to build archive: %v", err)
	}
	w.Write([]byte(corpCodeXML))
	zw.Close()
	archive := buf.Bytes()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write(archive)
	}))
}

func testCache(t *testing.T, srvURL string) *Cache {
	t.Helper()
	client := dart.NewClient().
		WithBaseURLs(srvURL, srvURL).
		WithLimiter(rate.NewLimiter(rate.Inf, 0))
	return NewCache(filepath.Join(t.TempDir(), "corp_code.csv"), client)
}

func TestBuildThenLoadRoundTrip(t *testing.T) {
	var hits int64
	srv := bulkServer(t, &hits)
	defer srv.Close()

	cache := testCache(t, srv.URL)

	built, err := cache.Build(context.Background(), "k")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(built) != 2 {
		t.Fatalf("Build returned %d entries, want 2", len(built))
	}

	loaded, err := cache.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(built, loaded) {
		t.Errorf("round trip mismatch:\nbuilt  %+v\nloaded %+v", built, loaded)
	}

	// The short code in the dump must come back padded, not truncated.
	if loaded[0].CorpCode != "00126380" {
		t.Errorf("corp code = %q, want 00126380", loaded[0].CorpCode)
	}
	if loaded[1].StockCode != "000660" {
		t.Errorf("stock code lost leading zeros: %q", loaded[1].StockCode)
	}
	for _, e := range loaded {
		if len(e.CorpCode) != 8 {
			t.Errorf("corp code %q not 8 characters after round trip", e.CorpCode)
		}
	}
}

func TestGetUsesCacheWithoutNetwork(t *testing.T) {
	var hits int64
	srv := bulkServer(t, &hits)
	defer srv.Close()

	cache := testCache(t, srv.URL)

	first, err := cache.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("first Get returned error: %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Fatalf("first Get made %d requests, want 1", got)
	}

	second, err := cache.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("cache hit still made a network call (%d total requests)", got)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache hit returned different table:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestGetPropagatesBuildFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := testCache(t, srv.URL)
	if _, err := cache.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error when bulk download fails, got nil")
	}

	// No partial cache file should be left behind.
	if _, err := os.Stat(cache.path); err == nil {
		t.Error("cache file written despite failed build")
	}
}

func TestLoadRejectsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corp_code.csv")
	csv := "corp_name,corp_code,stock_code\n삼성전자,not-a-code,005930\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(path, dart.NewClient())
	if _, err := cache.Load(); err == nil {
		t.Fatal("expected error for non-numeric corp code, got nil")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corp_code.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(path, dart.NewClient())
	if _, err := cache.Load(); err == nil {
		t.Fatal("expected error for empty cache file, got nil")
	}
}
