package restclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDoDecodesEnvelope(t *testing.T) {
	type product struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	cases := []struct {
		name string
		body string
	}{
		{"bare payload", `{"id": 5, "name": "brake pads"}`},
		{"single envelope", `{"data": {"id": 5, "name": "brake pads"}}`},
		{"double envelope", `{"data": {"data": {"id": 5, "name": "brake pads"}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, err := New(srv.URL, time.Second, testLogger())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			var got product
			if err := c.Do(context.Background(), http.MethodGet, "/productDetails/5", nil, &got); err != nil {
				t.Fatalf("Do failed: %v", err)
			}
			if got.ID != 5 || got.Name != "brake pads" {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestDoReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "coupon not applicable"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = c.Do(context.Background(), http.MethodPost, "/coupon/apply/1/2", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "coupon not applicable" {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestDoSendsHeadersAndToken(t *testing.T) {
	var gotIdem, gotAuth, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdem = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetToken("tok123")

	err = c.Do(context.Background(), http.MethodPost, "/create/Order",
		map[string]int{"userId": 1}, nil,
		Header{Key: "Idempotency-Key", Value: "abc"},
	)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotIdem != "abc" {
		t.Fatalf("idempotency key not sent, got %q", gotIdem)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("auth header %q", gotAuth)
	}
	if gotCT != "application/json" {
		t.Fatalf("content type %q", gotCT)
	}
}

func TestDoHonoursContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, err := New(srv.URL, 5*time.Second, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err = c.Do(ctx, http.MethodGet, "/fetch/1/cart", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
