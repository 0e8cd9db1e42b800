package embeds

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEmbedID indicates the raw identifier did not yield a usable embed id.
	ErrInvalidEmbedID = errors.New("embed id is not valid")
	// ErrEmptyFeed indicates the platform API answered with an empty body.
	ErrEmptyFeed = errors.New("embed feed is empty")
	// ErrMalformedFeed indicates the platform API answered with a body that is not JSON.
	ErrMalformedFeed = errors.New("embed feed is not valid json")
	// ErrNoEmbedDocument indicates the media does not exist or has no downloadable thumbnail.
	ErrNoEmbedDocument = errors.New("no embed document found")
	// ErrDuplicateDocument indicates a document already exists for the embed id and platform.
	ErrDuplicateDocument = errors.New("embed document already exists")
	// ErrPersistenceFailed indicates the document factory could not materialize a document.
	ErrPersistenceFailed = errors.New("document cannot be persisted")
	// ErrUnknownOption indicates an iframe option outside the recognized set.
	ErrUnknownOption = errors.New("unknown iframe option")
	// ErrInvalidOption indicates an iframe option value of the wrong type or range.
	ErrInvalidOption = errors.New("invalid iframe option")
	// ErrUnknownPlatform indicates no platform is registered under the requested name.
	ErrUnknownPlatform = errors.New("unknown embed platform")
	// ErrSearchUnsupported indicates the platform does not expose a search feed.
	ErrSearchUnsupported = errors.New("embed platform does not support search")
)

// FetchError reports a non-successful HTTP status returned by a platform API.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, e.Reason)
}
