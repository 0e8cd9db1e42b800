package handlers

import (
	"context"

	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/models"
)

// EmbedRegistry resolves platform names and media URLs to finders.
type EmbedRegistry interface {
	Finder(platform, rawID string) (*embeds.Finder, error)
	FinderForURL(rawURL string) (*embeds.Finder, error)
	Search(ctx context.Context, platform, term, author string, maxResults int) (embeds.Feed, error)
	Platforms() []string
}

// DocumentStore captures the persistence operations behind embed documents.
type DocumentStore interface {
	embeds.DocumentLookup
	Create(ctx context.Context, doc models.Document) error
}

// ProfilePictureFinder resolves a social network alias to a picture URL.
type ProfilePictureFinder interface {
	PictureURL(ctx context.Context, alias string) (string, error)
}
