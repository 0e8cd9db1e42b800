package embeds

import (
	"errors"
	"testing"
)

func TestValidateEmbedID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare id", raw: "abc123", want: "abc123"},
		{name: "url with query", raw: "https://host/path/abc123?x=1", want: "abc123"},
		{name: "short link", raw: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "assignment without query", raw: "path/abc=def", want: "abc"},
		{name: "embed path", raw: "https://player.vimeo.com/video/76979871", want: "76979871"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmbedID(tt.raw)
			if err != nil {
				t.Fatalf("ValidateEmbedID(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("ValidateEmbedID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateEmbedIDRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "https://host/path/", "https://host/path/?x=1", "=abc"} {
		if _, err := ValidateEmbedID(raw); !errors.Is(err, ErrInvalidEmbedID) {
			t.Fatalf("ValidateEmbedID(%q) error = %v, want ErrInvalidEmbedID", raw, err)
		}
	}
}
