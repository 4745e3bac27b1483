package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"laundromat/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientInvalidURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad", "treasury.laundromat", discardLogger()); err == nil {
		t.Fatal("expected error for malformed url")
	}
	if _, err := NewHTTPClient("/relative", "treasury.laundromat", discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPClientTransferDirections(t *testing.T) {
	var mu sync.Mutex
	var requests []transferRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transfers" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req transferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode transfer request: %v", err)
		}
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(transferResponse{Reference: "tx-001"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "treasury.laundromat", discardLogger())
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	ref, err := client.Hold(context.Background(), "customer.alice", 5)
	if err != nil || ref != "tx-001" {
		t.Fatalf("unexpected hold result: %q err=%v", ref, err)
	}
	if _, err := client.Payout(context.Background(), "admin.bob", 5); err != nil {
		t.Fatalf("payout returned error: %v", err)
	}
	if _, err := client.Refund(context.Background(), "customer.alice", 5); err != nil {
		t.Fatalf("refund returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 3 {
		t.Fatalf("expected three transfers, got %d", len(requests))
	}

	hold, payout, refund := requests[0], requests[1], requests[2]
	if hold.From != "customer.alice" || hold.To != "treasury.laundromat" || hold.Amount != 5 {
		t.Fatalf("unexpected hold request: %+v", hold)
	}
	if payout.From != "treasury.laundromat" || payout.To != "admin.bob" {
		t.Fatalf("unexpected payout request: %+v", payout)
	}
	if refund.From != "treasury.laundromat" || refund.To != "customer.alice" {
		t.Fatalf("unexpected refund request: %+v", refund)
	}

	keys := make(map[string]bool, len(requests))
	for _, req := range requests {
		if req.IdempotencyKey == "" {
			t.Fatal("expected idempotency key on every transfer")
		}
		keys[req.IdempotencyKey] = true
	}
	if len(keys) != len(requests) {
		t.Fatalf("expected a fresh idempotency key per transfer, got %d unique of %d", len(keys), len(requests))
	}
}

func TestHTTPClientTransferRejected(t *testing.T) {
	for _, status := range []int{http.StatusPaymentRequired, http.StatusUnprocessableEntity} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "insufficient deposit", status)
		}))

		client, err := NewHTTPClient(server.URL, "treasury.laundromat", discardLogger())
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}
		_, err = client.Hold(context.Background(), "customer.alice", 5)
		if !errors.Is(err, ErrTransferRejected) {
			t.Fatalf("expected transfer rejection for status %d, got %v", status, err)
		}
		server.Close()
	}
}

func TestHTTPClientTransferServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "treasury.laundromat", discardLogger())
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	_, err = client.Payout(context.Background(), "admin.bob", 5)
	if err == nil || errors.Is(err, ErrTransferRejected) {
		t.Fatalf("expected generic gateway error, got %v", err)
	}
}

func TestHTTPClientTransferBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "treasury.laundromat", discardLogger())
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	if _, err := client.Hold(context.Background(), "customer.alice", 5); err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestNewClientFromConfig(t *testing.T) {
	gateway, err := newClient(clientParams{
		Config: &config.Config{PaymentGatewayAddress: "http://localhost:9000", TreasuryAccount: "treasury.laundromat"},
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gateway == nil {
		t.Fatal("expected gateway instance")
	}

	if _, err := newClient(clientParams{
		Config: &config.Config{PaymentGatewayAddress: "not absolute", TreasuryAccount: "treasury.laundromat"},
		Logger: discardLogger(),
	}); err == nil {
		t.Fatal("expected error for invalid gateway address")
	}
}
