package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/headline-harvester/pkg/httpclient"
)

// HTTPClient is the client used to download homepages.
type HTTPClient = httpclient.Client

// DefaultHTTPClient returns a resty-backed client for homepage downloads.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// PageFetcher downloads newspaper homepages.
type PageFetcher struct {
	client HTTPClient
}

// NewPageFetcher builds a PageFetcher; a nil client selects DefaultHTTPClient.
func NewPageFetcher(client HTTPClient) *PageFetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &PageFetcher{client: client}
}

// Fetch returns the raw homepage of cfg. Anything other than 200 is an error.
func (f *PageFetcher) Fetch(ctx context.Context, cfg Provider) ([]byte, error) {
	if strings.TrimSpace(cfg.SourceURL) == "" {
		return nil, fmt.Errorf("%s provider source_url is empty", cfg.ID)
	}

	resp, err := f.client.Get(ctx, cfg.SourceURL, Headers(cfg))
	if err != nil {
		return nil, fmt.Errorf("fetch %s homepage: %w", cfg.ID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s homepage returned status %d body: %s", cfg.ID, resp.StatusCode(), responseSnippet(body))
	}
	return body, nil
}

// responseSnippet returns a truncated copy of a response body for error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
