package httpclient

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kyildiz/restkit/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c.WithRetryDelay(0)
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative/only", "mailto:a@example.com"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) accepted invalid base url", raw)
		}
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c, err := New("https://api.example.com/v1/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Config().BaseURL; got != "https://api.example.com/v1" {
		t.Errorf("BaseURL = %q", got)
	}
}

func TestWithMaxAttemptsPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	c, _ := New("https://api.example.com")
	c.WithMaxAttempts(0)
}

func TestGetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	body, err := newTestClient(t, srv.URL).Get(context.Background(), "/users/42")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if body != `{"id":42}` {
		t.Errorf("body = %q", body)
	}
}

func TestRequestCarriesHeadersAndAuth(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL).
		WithHeaders(map[string]string{"X-Tenant": "acme"}).
		WithAuth(NewBasicAuth("john.doe", ""))

	if _, err := c.Get(context.Background(), "/", WithHeader("X-Trace", "t-1")); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.Get("X-Tenant") != "acme" {
		t.Errorf("X-Tenant = %q", got.Get("X-Tenant"))
	}
	if got.Get("X-Trace") != "t-1" {
		t.Errorf("X-Trace = %q", got.Get("X-Trace"))
	}
	if !strings.HasPrefix(got.Get("User-Agent"), "restkit/") {
		t.Errorf("User-Agent = %q", got.Get("User-Agent"))
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("john.doe:"))
	if got.Get("Authorization") != want {
		t.Errorf("Authorization = %q, want %q", got.Get("Authorization"), want)
	}
}

func TestRequestHeaderOverridesClientHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Accept")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL).WithHeaders(map[string]string{"Accept": "application/json"})
	if _, err := c.Get(context.Background(), "/", WithHeader("Accept", "text/csv")); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "text/csv" {
		t.Errorf("Accept = %q", got)
	}
}

func TestPostForwardsBody(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		got = string(buf)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).Post(context.Background(), "/items", `{"name":"widget"}`); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got != `{"name":"widget"}` {
		t.Errorf("body = %q", got)
	}
}

func TestQueryParamsEncoded(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Get(context.Background(), "/search",
		WithQuery(map[string]string{"page": "1", "limit": "10"}))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "limit=10&page=1" {
		t.Errorf("query = %q", got)
	}
}

func TestRetryExhaustsAllAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL).WithMaxAttempts(3)
	_, err := c.Get(context.Background(), "/flaky")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}

	e, ok := errors.AsError(err)
	if !ok {
		t.Fatalf("not a classified error: %v", err)
	}
	if e.Kind != errors.KindInternalServerError {
		t.Errorf("kind = %v", e.Kind)
	}
	if e.Details["attempt"] != 3 {
		t.Errorf("attempt = %v, want 3", e.Details["attempt"])
	}
}

func TestRetryStopsOnSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := newTestClient(t, srv.URL).WithMaxAttempts(5).Get(context.Background(), "/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if body != "ok" {
		t.Errorf("body = %q", body)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestNoRetryOnExemptKind(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"field":"email","reason":"malformed"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL).WithMaxAttempts(5)
	_, err := c.Post(context.Background(), "/users", `{}`,
		WithNoRetryOn(errors.KindUnprocessableEntity))
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	e, ok := errors.AsError(err)
	if !ok {
		t.Fatalf("not a classified error: %v", err)
	}
	if e.Kind != errors.KindUnprocessableEntity {
		t.Errorf("kind = %v", e.Kind)
	}
	if e.Details["attempt"] != 1 {
		t.Errorf("attempt = %v, want 1", e.Details["attempt"])
	}
	if e.Details["field"] != "email" {
		t.Errorf("body not folded into details: %v", e.Details)
	}
}

func TestTransportErrorsAreNotRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := newTestClient(t, srv.URL).WithMaxAttempts(5)
	_, err := c.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("expected error")
	}
	e, ok := errors.AsError(err)
	if !ok {
		t.Fatalf("not a classified error: %v", err)
	}
	if e.Kind != errors.KindNetwork {
		t.Errorf("kind = %v, want KindNetwork", e.Kind)
	}
}

func TestRequestTimeoutOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	start := time.Now()
	_, err := c.Get(context.Background(), "/slow", WithRequestTimeout(30*time.Millisecond))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout override ignored, took %v", elapsed)
	}
	e, ok := errors.AsError(err)
	if !ok {
		t.Fatalf("not a classified error: %v", err)
	}
	if e.Kind != errors.KindNetwork {
		t.Errorf("kind = %v, want KindNetwork", e.Kind)
	}
}

func TestDoCarriesCallerContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL).WithMaxAttempts(1)
	_, err := c.Get(context.Background(), "/missing",
		WithContext(errors.Context{"operation": "fetch-user"}))
	if err == nil {
		t.Fatal("expected error")
	}
	e, _ := errors.AsError(err)
	if e.Details["operation"] != "fetch-user" {
		t.Errorf("caller context lost: %v", e.Details)
	}
	if e.Details["method"] != http.MethodGet {
		t.Errorf("method missing: %v", e.Details)
	}
	if e.Details["url"] == nil {
		t.Errorf("url missing: %v", e.Details)
	}
}

func TestHead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s", r.Method)
		}
	}))
	defer srv.Close()

	if err := newTestClient(t, srv.URL).Head(context.Background(), "/ping"); err != nil {
		t.Fatalf("Head: %v", err)
	}
}
