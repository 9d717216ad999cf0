// Package api is the HTTP client for the remote Checkpoint API — the only
// data source this frontend has. It plays the repository role: typed
// endpoint methods over one credential-forwarding request shim, surfacing
// domain errors from errors.go rather than raw statuses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client calls the Checkpoint API. Construct once and share; it is safe for
// concurrent use.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// New validates the upstream base URL and builds a client.
func New(baseURL string, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	l := logger.With().Str("module", "api").Logger()
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		log:  l,
	}, nil
}

// do performs one upstream request, attaching the session credential
// uniformly. The caller owns the response body.
func (c *Client) do(ctx context.Context, cred Credential, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	cred.attach(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	return resp, nil
}

// getJSON performs a GET and decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, cred Credential, path string, out any) error {
	resp, err := c.do(ctx, cred, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Ping checks upstream reachability with the cheapest catalog request.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, NoCredential(), http.MethodGet, "/api/games?page=0&size=1", nil)
	if err != nil {
		return err
	}
	drain(resp)
	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp.StatusCode)
	}
	return nil
}

// drain discards a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

// IsNotFound reports whether err is the domain not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
