package embeds

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// Feed is the parsed JSON metadata returned by a platform API for one embed id.
// Values are addressed with gjson paths such as "items.0.snippet.title".
type Feed struct {
	raw []byte
}

// ParseFeed validates body as JSON. Empty and malformed bodies are reported
// separately so callers can tell "no data" from "bad data". A JSON document
// carrying nothing (null, false, [] or {}) counts as empty.
func ParseFeed(body []byte) (Feed, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Feed{}, ErrEmptyFeed
	}
	if !gjson.ValidBytes(body) {
		return Feed{}, ErrMalformedFeed
	}
	if blank(gjson.ParseBytes(body)) {
		return Feed{}, ErrEmptyFeed
	}
	return Feed{raw: body}, nil
}

func blank(res gjson.Result) bool {
	switch {
	case res.Type == gjson.Null, res.Type == gjson.False:
		return true
	case res.IsArray():
		return len(res.Array()) == 0
	case res.IsObject():
		return len(res.Map()) == 0
	}
	return false
}

// Get returns the value found at path.
func (f Feed) Get(path string) gjson.Result {
	return gjson.GetBytes(f.raw, path)
}

// String returns the string found at path, or "" when absent.
func (f Feed) String(path string) string {
	return f.Get(path).String()
}

// FirstString returns the first non-empty string among paths.
func (f Feed) FirstString(paths ...string) string {
	for _, p := range paths {
		if s := f.String(p); s != "" {
			return s
		}
	}
	return ""
}

// Raw returns the JSON body backing the feed.
func (f Feed) Raw() []byte {
	return f.raw
}

// IsZero reports whether the feed holds no data.
func (f Feed) IsZero() bool {
	return len(f.raw) == 0
}

type feedState int

const (
	feedUnfetched feedState = iota
	feedFetched
	feedFailed
)
