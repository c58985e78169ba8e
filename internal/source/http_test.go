package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/andybalholm/brotli"
	"golang.org/x/text/encoding/japanese"

	"github.com/luqmanhadi/oshikatsu/internal/apperrors"
	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/testutil"
)

func newTestHTTPSource(url string, retries int) *HTTPSource {
	return NewHTTPSource(&config.Config{
		DataSource:    url,
		ClientTimeout: "5s",
		ClientRetries: retries,
		UserAgent:     "oshikatsu-test",
	})
}

func TestHTTPSource_Load(t *testing.T) {
	body := testutil.GenerateOshiJSON([]testutil.OshiOptions{
		{OrderID: 2, NameJP: "兎田ぺこら"},
		{OrderID: 1, NameJP: "星街すいせい"},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "oshikatsu-test" {
			t.Errorf("Expected User-Agent oshikatsu-test, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	list, err := newTestHTTPSource(server.URL, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 2 || list[0].NameJP != "兎田ぺこら" {
		t.Errorf("Unexpected records: %+v", list)
	}
}

func TestHTTPSource_BrotliResponse(t *testing.T) {
	body := testutil.GenerateOshiJSON([]testutil.OshiOptions{{OrderID: 1}})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") != acceptEncoding {
			t.Errorf("Expected Accept-Encoding %q, got %q", acceptEncoding, r.Header.Get("Accept-Encoding"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		_, _ = bw.Write([]byte(body))
		_ = bw.Close()
	}))
	defer server.Close()

	list, err := newTestHTTPSource(server.URL, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 record, got %d", len(list))
	}
}

func TestHTTPSource_DeclaredCharset(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(`[{"order_id": 1, "oshi_org_jp": "ホロライブ"}]`)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=Shift_JIS")
		_, _ = w.Write([]byte(encoded))
	}))
	defer server.Close()

	list, err := newTestHTTPSource(server.URL, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 || list[0].OrgJP != "ホロライブ" {
		t.Errorf("Expected Shift_JIS to be decoded, got %+v", list)
	}
}

func TestHTTPSource_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestHTTPSource(server.URL, 3).Load(context.Background())
	if !errors.Is(err, &apperrors.ErrDataSource{}) {
		t.Fatalf("Expected ErrDataSource, got %v", err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected StatusError 404 in chain, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly 1 request, got %d", calls.Load())
	}
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	list, err := newTestHTTPSource(server.URL, 2).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %d records", len(list))
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 requests, got %d", calls.Load())
	}
}

func TestHTTPSource_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestHTTPSource(server.URL, 2).Load(context.Background())
	if !errors.Is(err, &apperrors.ErrDataSource{}) {
		t.Fatalf("Expected ErrDataSource, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 1 attempt plus 2 retries, got %d requests", calls.Load())
	}
}

func TestHTTPSource_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := newTestHTTPSource(server.URL, 2).Load(context.Background())
	if !errors.Is(err, &apperrors.ErrMalformedData{}) {
		t.Fatalf("Expected ErrMalformedData, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "transport error", err: errors.New("connection refused"), want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "500", err: apperrors.NewDataSourceError("u", &StatusError{StatusCode: 500}), want: true},
		{name: "429", err: apperrors.NewDataSourceError("u", &StatusError{StatusCode: 429}), want: true},
		{name: "404", err: apperrors.NewDataSourceError("u", &StatusError{StatusCode: 404}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
