package embeds

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IFrameOptions configures both the rendered iframe and the platform source URL.
type IFrameOptions struct {
	Width      int
	Height     int
	Title      string
	ID         string
	Class      string
	Fullscreen bool

	// Autoplay, Loop and Controls only influence the platform source URL.
	Autoplay bool
	Loop     bool
	Controls bool
}

// DefaultIFrameOptions returns the option set used when nothing is specified.
func DefaultIFrameOptions() IFrameOptions {
	return IFrameOptions{Controls: true}
}

// Validate rejects out-of-range values.
func (o IFrameOptions) Validate() error {
	if o.Width < 0 {
		return fmt.Errorf("%w: width must be >= 0, got %d", ErrInvalidOption, o.Width)
	}
	if o.Height < 0 {
		return fmt.Errorf("%w: height must be >= 0, got %d", ErrInvalidOption, o.Height)
	}
	return nil
}

// ResolveIFrameOptions builds IFrameOptions from loosely typed key/value input,
// such as query parameters. Keys outside the recognized set are rejected.
func ResolveIFrameOptions(raw map[string]string) (IFrameOptions, error) {
	opts := DefaultIFrameOptions()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := strings.TrimSpace(raw[key])
		var err error
		switch key {
		case "width":
			opts.Width, err = parseDimension(key, value)
		case "height":
			opts.Height, err = parseDimension(key, value)
		case "title":
			opts.Title = value
		case "id":
			opts.ID = value
		case "class":
			opts.Class = value
		case "fullscreen":
			opts.Fullscreen, err = parseFlag(key, value)
		case "autoplay":
			opts.Autoplay, err = parseFlag(key, value)
		case "loop":
			opts.Loop, err = parseFlag(key, value)
		case "controls":
			opts.Controls, err = parseFlag(key, value)
		default:
			return IFrameOptions{}, fmt.Errorf("%w: %q", ErrUnknownOption, key)
		}
		if err != nil {
			return IFrameOptions{}, err
		}
	}

	if err := opts.Validate(); err != nil {
		return IFrameOptions{}, err
	}
	return opts, nil
}

func parseDimension(key, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidOption, key, value)
	}
	return n, nil
}

func parseFlag(key, value string) (bool, error) {
	if value == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidOption, key, value)
	}
	return b, nil
}
