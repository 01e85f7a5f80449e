package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/UnendingLoop/minigrep/internal/model"
)

// Client talks to search nodes. The zero value uses http.DefaultClient.
type Client struct {
	HTTP *http.Client
}

func (c Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Ping reports whether the node at addr answers its health endpoint with 200.
func (c Client) Ping(ctx context.Context, addr string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+PingPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node %q answered ping with %d", addr, resp.StatusCode)
	}
	return nil
}

// Send posts task to the node at addr and decodes its result.
func (c Client) Send(ctx context.Context, addr string, task *model.SearchTask) (*model.SearchResult, error) {
	raw, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to MARSHAL task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+SearchPath, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to SEND task to node %q: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("node %q answered %d: %s", addr, resp.StatusCode, bytes.TrimSpace(body))
	}

	var result model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to UNMARSHAL result from node %q: %w", addr, err)
	}
	return &result, nil
}
