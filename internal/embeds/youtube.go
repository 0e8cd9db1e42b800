package embeds

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// YouTube resolves videos through the YouTube Data API v3.
type YouTube struct {
	// APIBase and EmbedBase override the public endpoints, mainly for tests.
	APIBase   string
	EmbedBase string
}

const (
	youtubeAPIBase   = "https://www.googleapis.com/youtube/v3"
	youtubeEmbedBase = "https://www.youtube.com/embed"
)

func (YouTube) Name() string { return "youtube" }

func (y YouTube) FeedURL(embedID, key string) string {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", embedID)
	if key != "" {
		q.Set("key", key)
	}
	return orDefault(y.APIBase, youtubeAPIBase) + "/videos?" + q.Encode()
}

func (y YouTube) SearchURL(term, author string, maxResults int, key string) string {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", term)
	q.Set("maxResults", strconv.Itoa(maxResults))
	if author != "" {
		q.Set("channelId", author)
	}
	if key != "" {
		q.Set("key", key)
	}
	return orDefault(y.APIBase, youtubeAPIBase) + "/search?" + q.Encode()
}

func (y YouTube) Source(embedID string, opts IFrameOptions) string {
	q := url.Values{}
	q.Set("rel", "0")
	q.Set("html5", "1")
	q.Set("wmode", "transparent")
	if opts.Autoplay {
		q.Set("autoplay", "1")
	}
	if opts.Loop {
		// Looping a single video requires it to be its own playlist.
		q.Set("loop", "1")
		q.Set("playlist", embedID)
	}
	if !opts.Controls {
		q.Set("controls", "0")
	}
	return orDefault(y.EmbedBase, youtubeEmbedBase) + "/" + url.PathEscape(embedID) + "?" + q.Encode()
}

// EmbedIDFromURL reads the v parameter of watch URLs. Short and embed URLs
// carry the id as their last path segment.
func (YouTube) EmbedIDFromURL(u *url.URL) (string, error) {
	if strings.TrimSuffix(u.Path, "/") == "/watch" {
		v := u.Query().Get("v")
		if v == "" {
			return "", fmt.Errorf("%w: watch url without v parameter", ErrInvalidEmbedID)
		}
		return ValidateEmbedID(v)
	}
	return ValidateEmbedID(u.Path)
}

// HasMedia reports whether the videos list matched the id. Unknown ids come
// back as 200 with an empty items array.
func (YouTube) HasMedia(feed Feed) bool {
	return feed.Get("items.#").Int() > 0
}

func (YouTube) MediaTitle(feed Feed) string {
	return feed.String("items.0.snippet.title")
}

func (YouTube) MediaDescription(feed Feed) string {
	return feed.String("items.0.snippet.description")
}

func (YouTube) MediaCopyright(feed Feed) string {
	return feed.String("items.0.snippet.channelTitle")
}

func (YouTube) ThumbnailURL(feed Feed) string {
	return feed.FirstString(
		"items.0.snippet.thumbnails.maxres.url",
		"items.0.snippet.thumbnails.standard.url",
		"items.0.snippet.thumbnails.high.url",
		"items.0.snippet.thumbnails.medium.url",
		"items.0.snippet.thumbnails.default.url",
	)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
