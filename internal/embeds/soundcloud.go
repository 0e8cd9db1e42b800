package embeds

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SoundCloud resolves tracks through the SoundCloud API using an app client id as key.
type SoundCloud struct {
	APIBase    string
	PlayerBase string
}

const (
	soundcloudAPIBase    = "https://api.soundcloud.com"
	soundcloudPlayerBase = "https://w.soundcloud.com/player/"
)

func (SoundCloud) Name() string { return "soundcloud" }

func (s SoundCloud) FeedURL(embedID, key string) string {
	u := orDefault(s.APIBase, soundcloudAPIBase) + "/tracks/" + url.PathEscape(embedID)
	if key == "" {
		return u
	}
	q := url.Values{}
	q.Set("client_id", key)
	return u + "?" + q.Encode()
}

func (s SoundCloud) SearchURL(term, author string, maxResults int, key string) string {
	q := url.Values{}
	q.Set("q", term)
	q.Set("limit", strconv.Itoa(maxResults))
	if author != "" {
		q.Set("user_id", author)
	}
	if key != "" {
		q.Set("client_id", key)
	}
	return orDefault(s.APIBase, soundcloudAPIBase) + "/tracks?" + q.Encode()
}

func (s SoundCloud) Source(embedID string, opts IFrameOptions) string {
	q := url.Values{}
	q.Set("url", soundcloudAPIBase+"/tracks/"+embedID)
	q.Set("hide_related", "true")
	q.Set("visual", "true")
	if opts.Autoplay {
		q.Set("auto_play", "true")
	}
	return orDefault(s.PlayerBase, soundcloudPlayerBase) + "?" + q.Encode()
}

// EmbedIDFromURL accepts API track URLs only. Page URLs name a permalink,
// while the tracks endpoint needs the numeric track id.
func (SoundCloud) EmbedIDFromURL(u *url.URL) (string, error) {
	id, err := ValidateEmbedID(u.Path)
	if err != nil {
		return "", err
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", fmt.Errorf("%w: soundcloud needs a numeric track id, got %q", ErrInvalidEmbedID, id)
	}
	return id, nil
}

func (SoundCloud) MediaTitle(feed Feed) string       { return feed.String("title") }
func (SoundCloud) MediaDescription(feed Feed) string { return feed.String("description") }
func (SoundCloud) MediaCopyright(feed Feed) string   { return feed.String("user.username") }

// ThumbnailURL prefers the 500px artwork over the default 100px "large" variant.
func (SoundCloud) ThumbnailURL(feed Feed) string {
	artwork := feed.FirstString("artwork_url", "user.avatar_url")
	return strings.Replace(artwork, "-large.", "-t500x500.", 1)
}
