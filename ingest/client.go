package ingest

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/log"
)

const (
	apiVersion  = "2016-04-01"
	apiResource = "/api/logs"
)

// Client posts JSON record batches to the ingestion endpoint, signing each
// request with the workspace shared key. Submission failures are reported to
// the caller but are expected to be logged and swallowed; ingestion never
// decides the outcome of a run.
type Client struct {
	settings *Settings
	client   *http.Client
	logger   log.Logger
	endpoint string
	now      func() time.Time
}

// NewClient creates a client for the workspace described by settings.
func NewClient(logger log.Logger, settings *Settings) *Client {
	return &Client{
		settings: settings,
		client:   &http.Client{Timeout: settings.Timeout},
		logger:   logger,
		endpoint: fmt.Sprintf("https://%s.%s%s?api-version=%s", settings.CustomerID, settings.Host, apiResource, apiVersion),
		now:      time.Now,
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SetEndpoint overrides the request URL. Used by tests to point the client
// at a local server.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Signature computes the authorization header value for a request with the
// given date header and body length: an HMAC-SHA256 over the canonical
// request string, keyed with the decoded shared key.
func (c *Client) Signature(date string, contentLength int) (string, error) {
	key, err := base64.StdEncoding.DecodeString(c.settings.SharedKey)
	if err != nil {
		return "", fmt.Errorf("failed to decode shared key: %w", err)
	}
	canonical := fmt.Sprintf("POST\n%d\napplication/json\nx-ms-date:%s\n%s", contentLength, date, apiResource)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(canonical))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("SharedKey %s:%s", c.settings.CustomerID, sig), nil
}

// Post submits one JSON array of records. Transport errors and 5xx
// responses are retried with exponential backoff up to the configured
// attempt count; 4xx responses are not retried.
func (c *Client) Post(ctx context.Context, body []byte) error {
	op := func() error {
		return c.post(ctx, body)
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.settings.MaxRetries), ctx)
	return backoff.Retry(op, bo)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	date := c.now().UTC().Format(http.TimeFormat)
	auth, err := c.Signature(date, len(body))
	if err != nil {
		return backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	req.Header.Set("Log-Type", c.settings.LogType)
	req.Header.Set("x-ms-date", date)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Ingestion request failed", "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("Accepted", "status", resp.StatusCode, "logType", c.settings.LogType)
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.logger.Error("Ingestion rejected",
		"status", resp.StatusCode,
		"reason", resp.Status,
		"body", string(respBody))

	err = fmt.Errorf("ingestion returned status %d", resp.StatusCode)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return backoff.Permanent(err)
	}
	return err
}
