package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSendAndParseDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "ua/1" || r.Header.Get("X-Key") != "k" {
			t.Errorf("missing headers: %v", r.Header)
		}
		if r.URL.Query().Get("ids") != "a,b" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"name":"bitcoin"}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("ua/1"), WithHeader("X-Key", "k"))
	var out struct {
		Name string `json:"name"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL,
		QueryParams: map[string][]string{"ids": {"a,b"}},
	}, &out)
	if err != nil {
		t.Fatalf("SendAndParse: %v", err)
	}
	if out.Name != "bitcoin" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestSendAndParseStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(strings.Repeat("x", 10_000)))
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: srv.URL}, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusTooManyRequests || len(se.Body) != 4096 {
		t.Fatalf("unexpected status error code=%d len=%d", se.Code, len(se.Body))
	}
	if se.RetryAfter != 30*time.Second {
		t.Fatalf("expected Retry-After 30s, got %s", se.RetryAfter)
	}
}

func TestSendAndParseJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	var raw []byte
	err := NewClient().SendAndParse(context.Background(), &RequestOptions{
		Method: MethodPost,
		URL:    srv.URL,
		Body:   map[string]int{"days": 30},
	}, &raw)
	if err != nil {
		t.Fatalf("SendAndParse: %v", err)
	}
	if string(raw) != `{"days":30}` {
		t.Fatalf("unexpected echo %s", raw)
	}
}
