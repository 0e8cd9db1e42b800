// Package pictures resolves profile picture URLs for social network aliases.
package pictures

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vidfriends/mediafinders/internal/embeds"
)

const facebookGraphBase = "http://graph.facebook.com"

// FacebookFinder looks up the public profile picture of a Facebook alias
// through the Graph API.
type FacebookFinder struct {
	Client *http.Client
	// BaseURL overrides the Graph API host, mainly for tests.
	BaseURL string
}

// NewFacebookFinder returns a finder using client, or http.DefaultClient when nil.
func NewFacebookFinder(client *http.Client) *FacebookFinder {
	if client == nil {
		client = http.DefaultClient
	}
	return &FacebookFinder{Client: client}
}

type pictureResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// PictureURL returns the 200x200 profile picture URL of alias. Transport,
// status and decoding failures are returned unchanged.
func (f *FacebookFinder) PictureURL(ctx context.Context, alias string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	base := f.BaseURL
	if base == "" {
		base = facebookGraphBase
	}

	endpoint := fmt.Sprintf("%s/%s/picture?redirect=false&width=200&height=200", base, url.PathEscape(alias))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &embeds.FetchError{URL: endpoint, StatusCode: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}

	var payload pictureResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Data.URL, nil
}
