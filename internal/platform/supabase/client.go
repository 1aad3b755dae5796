// Package supabase provides a minimal PostgREST RPC client. The pass system
// exposes its decision functions as Postgres stored procedures behind
// PostgREST; this client is the only transport that talks to it.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	dErrors "github.com/edcalderon/hashpass.tech/pkg/domain-errors"
)

// Client calls PostgREST RPC endpoints with API-key authentication.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New constructs a client. timeout bounds every RPC round trip; state-changing
// callers rely on this instead of leaving calls unbounded.
func New(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Rpc invokes the named stored procedure with the given params and decodes
// the response into out (typically a pointer to a slice of row structs).
//
// Errors: CodeTimeout or CodeUnavailable for transport failures,
// CodeMalformedData when the response does not decode, CodeUnavailable with
// the server's message for HTTP-level failures.
func (c *Client) Rpc(ctx context.Context, fn string, params any, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode rpc params")
	}

	url := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build rpc request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "rpc "+fn+" timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "rpc "+fn+" unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "read rpc response")
	}

	if resp.StatusCode >= 400 {
		// PostgREST error bodies are JSON with a "message" field; fall back
		// to the raw body when the shape differs.
		msg := gjson.GetBytes(raw, "message").String()
		if msg == "" {
			msg = string(raw)
		}
		if resp.StatusCode == http.StatusConflict {
			return dErrors.New(dErrors.CodeConflict, msg)
		}
		return dErrors.Newf(dErrors.CodeUnavailable, "rpc %s failed (%d): %s", fn, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeMalformedData, "decode rpc response")
	}
	return nil
}
