package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
)

// ErrTransferRejected indicates the gateway refused the transfer, e.g. the
// payer's deposit does not cover the requested hold.
var ErrTransferRejected = errors.New("transfer rejected")

// HTTPClient performs value transfers through the wallet gateway's HTTP API.
// The ledger treats the gateway as an opaque "move value V to account A"
// capability: a transfer either succeeds or the calling operation fails whole.
type HTTPClient struct {
	baseURL    *url.URL
	treasury   string
	httpClient *http.Client
	logger     *slog.Logger
}

// transferRequest mirrors the gateway's JSON payload. Every request carries a
// fresh idempotency key so a retried HTTP call cannot move value twice.
type transferRequest struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Amount         int64  `json:"amount"`
	Memo           string `json:"memo,omitempty"`
	IdempotencyKey string `json:"idempotency_key"`
}

type transferResponse struct {
	Reference string `json:"reference"`
}

// NewHTTPClient creates an HTTP transfer client with default timeout.
func NewHTTPClient(baseURL, treasury string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:  parsed,
		treasury: treasury,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Hold escrows the deposit from the paying account with the treasury.
func (c *HTTPClient) Hold(ctx context.Context, from string, amount int64) (string, error) {
	return c.transfer(ctx, from, c.treasury, amount, "escrow hold")
}

// Payout releases escrowed funds from the treasury to an operator account.
func (c *HTTPClient) Payout(ctx context.Context, to string, amount int64) (string, error) {
	return c.transfer(ctx, c.treasury, to, amount, "delivery payout")
}

// Refund returns escrowed funds from the treasury to a customer account.
func (c *HTTPClient) Refund(ctx context.Context, to string, amount int64) (string, error) {
	return c.transfer(ctx, c.treasury, to, amount, "cancellation refund")
}

func (c *HTTPClient) transfer(ctx context.Context, from, to string, amount int64, memo string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/transfers")

	payload, err := json.Marshal(transferRequest{
		From:           from,
		To:             to,
		Amount:         amount,
		Memo:           memo,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data transferResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		c.logger.Info("transfer completed",
			slog.String("from", from),
			slog.String("to", to),
			slog.Int64("amount", amount),
			slog.String("reference", data.Reference),
		)
		return data.Reference, nil
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s", ErrTransferRejected, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("transfer request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("payment gateway error: %s", resp.Status)
	}
}
