package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hft_go/internal/domain"
)

// SnapshotClient fetches the full-depth snapshot once at session start.
type SnapshotClient struct {
	url        string
	httpClient *http.Client
}

// NewSnapshotClient builds a client for the given depth endpoint.
func NewSnapshotClient(url string) *SnapshotClient {
	return &SnapshotClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves and decodes the snapshot. The caller treats failure as
// degraded startup (empty book), not fatal.
func (c *SnapshotClient) Fetch(ctx context.Context) (bids, asks []domain.Level, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("snapshot fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot read: %w", err)
	}

	return ParseSnapshot(body)
}
