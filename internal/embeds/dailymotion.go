package embeds

import (
	"net/url"
	"strconv"
)

// Dailymotion resolves videos through the Dailymotion REST API.
type Dailymotion struct {
	APIBase   string
	EmbedBase string
}

const (
	dailymotionAPIBase   = "https://api.dailymotion.com"
	dailymotionEmbedBase = "https://www.dailymotion.com/embed/video"
	dailymotionFields    = "id,title,description,owner.screenname,thumbnail_large_url"
)

func (Dailymotion) Name() string { return "dailymotion" }

func (d Dailymotion) FeedURL(embedID, _ string) string {
	q := url.Values{}
	q.Set("fields", dailymotionFields)
	return orDefault(d.APIBase, dailymotionAPIBase) + "/video/" + url.PathEscape(embedID) + "?" + q.Encode()
}

func (d Dailymotion) SearchURL(term, author string, maxResults int, _ string) string {
	q := url.Values{}
	q.Set("fields", dailymotionFields)
	q.Set("search", term)
	q.Set("limit", strconv.Itoa(maxResults))
	if author != "" {
		q.Set("owners", author)
	}
	return orDefault(d.APIBase, dailymotionAPIBase) + "/videos?" + q.Encode()
}

func (d Dailymotion) Source(embedID string, opts IFrameOptions) string {
	src := orDefault(d.EmbedBase, dailymotionEmbedBase) + "/" + url.PathEscape(embedID)
	q := url.Values{}
	if opts.Autoplay {
		q.Set("autoplay", "1")
	}
	if !opts.Controls {
		q.Set("controls", "0")
	}
	if len(q) == 0 {
		return src
	}
	return src + "?" + q.Encode()
}

func (Dailymotion) MediaTitle(feed Feed) string       { return feed.String("title") }
func (Dailymotion) MediaDescription(feed Feed) string { return feed.String("description") }

// The API flattens dotted field names into literal keys, so the dot is escaped.
func (Dailymotion) MediaCopyright(feed Feed) string { return feed.String(`owner\.screenname`) }
func (Dailymotion) ThumbnailURL(feed Feed) string   { return feed.String("thumbnail_large_url") }
