package embeds

import (
	"errors"
	"testing"
)

func TestParseFeedClassifiesBodies(t *testing.T) {
	tests := []struct {
		body string
		want error
	}{
		{body: "", want: ErrEmptyFeed},
		{body: " \n\t", want: ErrEmptyFeed},
		{body: "null", want: ErrEmptyFeed},
		{body: "false", want: ErrEmptyFeed},
		{body: "[]", want: ErrEmptyFeed},
		{body: "{}", want: ErrEmptyFeed},
		{body: "{\"title\":", want: ErrMalformedFeed},
		{body: "<html>", want: ErrMalformedFeed},
		{body: `{"title":"clip"}`, want: nil},
		{body: `[{"title":"clip"}]`, want: nil},
	}

	for _, tt := range tests {
		_, err := ParseFeed([]byte(tt.body))
		if !errors.Is(err, tt.want) {
			t.Fatalf("ParseFeed(%q) error = %v, want %v", tt.body, err, tt.want)
		}
	}
}

func TestFeedAccessors(t *testing.T) {
	feed, err := ParseFeed([]byte(`{"a":{"b":"x","empty":""},"list":[{"n":"first"}]}`))
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}

	if got := feed.String("a.b"); got != "x" {
		t.Fatalf("String(a.b) = %q", got)
	}
	if got := feed.String("list.0.n"); got != "first" {
		t.Fatalf("String(list.0.n) = %q", got)
	}
	if got := feed.String("missing"); got != "" {
		t.Fatalf("expected empty string for missing path, got %q", got)
	}
	if got := feed.FirstString("a.empty", "missing", "a.b"); got != "x" {
		t.Fatalf("FirstString = %q, want x", got)
	}
	if feed.IsZero() {
		t.Fatal("expected parsed feed to be non-zero")
	}
	if !(Feed{}).IsZero() {
		t.Fatal("expected zero feed to report IsZero")
	}
}
