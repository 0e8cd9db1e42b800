package embeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FeedFetcher retrieves the raw body of a platform API response.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher issues a single GET per Fetch call. It never retries.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher using the provided client, or
// http.DefaultClient when client is nil.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{Client: client}
}

// Fetch performs the GET request and returns the body of a 2xx response.
// Any other status is reported as a *FetchError carrying the reason phrase.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return body, nil
}

func reasonPhrase(resp *http.Response) string {
	// resp.Status is "404 Not Found"; keep the server's own wording when present.
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode))); reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
