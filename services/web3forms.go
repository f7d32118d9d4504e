package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// accessKeyField is the reserved payload key Web3Forms reads the access key from
	accessKeyField = "access_key"

	maxUpstreamBodyBytes = 1 << 20
)

// ErrUpstreamRejected is returned when Web3Forms answers with a non-2xx status
var ErrUpstreamRejected = errors.New("web3forms rejected submission")

// HTTPDoer is the subset of *http.Client used to reach Web3Forms
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UpstreamResponse is the raw Web3Forms answer; Body is always valid JSON
type UpstreamResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// Web3FormsClient posts JSON submissions to the Web3Forms API
type Web3FormsClient struct {
	url    string
	client HTTPDoer
}

// NewWeb3FormsClient creates a client for the given endpoint with a bounded timeout
func NewWeb3FormsClient(url string, timeout time.Duration) *Web3FormsClient {
	return &Web3FormsClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// NewWeb3FormsClientWithDoer creates a client that sends requests through doer
func NewWeb3FormsClientWithDoer(url string, doer HTTPDoer) *Web3FormsClient {
	return &Web3FormsClient{url: url, client: doer}
}

// Submit sends payload to Web3Forms. On a non-2xx answer it returns the parsed
// response together with an error wrapping ErrUpstreamRejected.
func (w *Web3FormsClient) Submit(ctx context.Context, payload map[string]json.RawMessage) (*UpstreamResponse, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build web3forms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach web3forms: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read web3forms response: %w", err)
	}
	if len(raw) > maxUpstreamBodyBytes {
		return nil, fmt.Errorf("failed to decode web3forms response: body exceeds %d bytes", maxUpstreamBodyBytes)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("failed to decode web3forms response: invalid JSON (status %d)", resp.StatusCode)
	}

	result := &UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(bytes.TrimSpace(raw)),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, fmt.Errorf("%w: status %d", ErrUpstreamRejected, resp.StatusCode)
	}

	return result, nil
}
