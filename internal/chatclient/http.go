package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is returned when a remote answers with a non 2xx status.
type StatusError struct {
	Method  string
	URL     string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.URL, e.Code)
}

// envelope mirrors the backend's response wrapper. Remotes that answer with
// a bare JSON body are accepted as well.
type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type restClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// newRestClient uses a client without a timeout when hc is nil; callers bound
// requests through ctx.
func newRestClient(baseURL string, hc *http.Client, token string) restClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return restClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		token:   token,
	}
}

// do sends body as JSON and decodes the (unwrapped) response into out.
func (c restClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	wrapped := json.Unmarshal(raw, &env) == nil && (env.Status != "" || env.Data != nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if wrapped && env.Message != "" {
			msg = env.Message
		}
		return &StatusError{Method: method, URL: url, Code: resp.StatusCode, Message: msg}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	payload := raw
	if wrapped && env.Data != nil {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}
