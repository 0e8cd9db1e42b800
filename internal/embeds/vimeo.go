package embeds

import "net/url"

// Vimeo resolves videos through the public Vimeo simple API, which needs no key.
type Vimeo struct {
	APIBase    string
	PlayerBase string
}

const (
	vimeoAPIBase    = "https://vimeo.com/api/v2"
	vimeoPlayerBase = "https://player.vimeo.com/video"
)

func (Vimeo) Name() string { return "vimeo" }

func (v Vimeo) FeedURL(embedID, _ string) string {
	return orDefault(v.APIBase, vimeoAPIBase) + "/video/" + url.PathEscape(embedID) + ".json"
}

func (v Vimeo) Source(embedID string, opts IFrameOptions) string {
	q := url.Values{}
	q.Set("title", "0")
	q.Set("byline", "0")
	q.Set("portrait", "0")
	q.Set("api", "1")
	if opts.Autoplay {
		q.Set("autoplay", "1")
	}
	if opts.Loop {
		q.Set("loop", "1")
	}
	return orDefault(v.PlayerBase, vimeoPlayerBase) + "/" + url.PathEscape(embedID) + "?" + q.Encode()
}

// The simple API answers with a one-element array.

func (Vimeo) MediaTitle(feed Feed) string       { return feed.String("0.title") }
func (Vimeo) MediaDescription(feed Feed) string { return feed.String("0.description") }
func (Vimeo) MediaCopyright(feed Feed) string   { return feed.String("0.user_name") }
func (Vimeo) ThumbnailURL(feed Feed) string     { return feed.String("0.thumbnail_large") }
