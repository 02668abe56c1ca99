package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// TransportError is the single failure shape this layer produces. StatusCode
// is zero when no HTTP response was received at all (network unreachable,
// timeout, garbled body).
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// errorBody is the structured error shape the service sends alongside
// non-2xx statuses. Message may be empty when the body is not JSON.
type errorBody struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Gateway is the one outbound HTTP transport. The cookie jar carries the
// credential cookie the service sets on login/register; application code
// never touches it.
type Gateway struct {
	base   *url.URL
	client *http.Client
}

func New(baseURL string, timeout time.Duration) (*Gateway, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Gateway{
		base: base,
		client: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// Send performs one JSON exchange. body and out may be nil. fallback is the
// per-operation message used when the server did not provide one. No
// retries happen here; callers re-issue the intent if they want another
// attempt.
func (g *Gateway) Send(ctx context.Context, method, path string, body, out any, fallback string) error {
	ref, err := url.Parse(path)
	if err != nil {
		return &TransportError{Message: fallback}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Message: fallback}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base.ResolveReference(ref).String(), reader)
	if err != nil {
		return &TransportError{Message: fallback}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return &TransportError{Message: fallback}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Message: fallback}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(raw, fallback),
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &TransportError{Message: fallback}
		}
	}
	return nil
}

// extractMessage pulls the server's message field out of an error body,
// falling back to the operation default when the body carries none.
func extractMessage(raw []byte, fallback string) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return fallback
	}
	return body.Message
}
