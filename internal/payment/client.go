package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnexpectedResponse is returned when the payment service answers with
// a non-2xx status or an unknown payment status.
var ErrUnexpectedResponse = errors.New("unexpected payment service response")

// HTTPClient calls POST {baseURL}/api/payments/simulate on the payment
// service.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient returns a client for the payment service at baseURL.  A
// zero timeout defaults to five seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// Authorize sends req to the payment service and decodes its verdict.
func (c *HTTPClient) Authorize(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/payments/simulate", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("payment service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}
	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode payment response: %w", err)
	}
	switch out.Status {
	case StatusApproved, StatusDeclined:
		return out, nil
	default:
		return Result{}, fmt.Errorf("%w: paymentStatus %q", ErrUnexpectedResponse, out.Status)
	}
}
