package embeds

import (
	"html"
	"strconv"
	"strings"
)

type attribute struct {
	key   string
	value string
}

// RenderIFrame composes the <iframe> markup for src. Width drives a default
// 16:10 height when no height is given. Empty attributes are dropped.
func RenderIFrame(src string, opts IFrameOptions) string {
	attrs := []attribute{{"src", src}}

	if opts.Width > 0 {
		attrs = append(attrs, attribute{"width", strconv.Itoa(opts.Width)})
	}

	height := opts.Height
	if height == 0 && opts.Width > 0 {
		height = opts.Width * 10 / 16
	}
	if height > 0 {
		attrs = append(attrs, attribute{"height", strconv.Itoa(height)})
	}

	attrs = append(attrs,
		attribute{"title", opts.Title},
		attribute{"id", opts.ID},
		attribute{"class", opts.Class},
		attribute{"frameborder", "0"},
	)

	if opts.Fullscreen {
		attrs = append(attrs,
			attribute{"webkitAllowFullScreen", "1"},
			attribute{"mozallowfullscreen", "1"},
			attribute{"allowFullScreen", "1"},
		)
	}

	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		parts = append(parts, a.key+`="`+html.EscapeString(a.value)+`"`)
	}

	return "<iframe " + strings.Join(parts, " ") + "></iframe>"
}
