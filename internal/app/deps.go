package app

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/vidfriends/mediafinders/internal/config"
	"github.com/vidfriends/mediafinders/internal/db"
	"github.com/vidfriends/mediafinders/internal/documents"
	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/handlers"
	"github.com/vidfriends/mediafinders/internal/pictures"
	"github.com/vidfriends/mediafinders/internal/repositories"
	"github.com/vidfriends/mediafinders/internal/storage"
	"github.com/vidfriends/mediafinders/internal/thumbnails"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	client := newHTTPClient(cfg)

	assets, err := buildStorage(ctx, cfg)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	return handlers.Dependencies{
		Embeds:          buildRegistry(cfg, client),
		Documents:       repositories.NewPostgresDocumentRepository(pool),
		DocumentFactory: documents.NewFactory(assets),
		Pictures:        pictures.NewFacebookFinder(client),
	}, nil
}

func newHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

func buildRegistry(cfg config.Config, client *http.Client) *embeds.Registry {
	fetcher := embeds.NewHTTPFetcher(client)
	downloader := thumbnails.NewDownloader(client, cfg.TempDir)
	return embeds.NewDefaultRegistry(fetcher, downloader, cfg.PlatformKeys.ByPlatform())
}

// buildStorage prefers the configured object store and falls back to a local
// directory under TempDir for development.
func buildStorage(ctx context.Context, cfg config.Config) (documents.Storage, error) {
	if cfg.ObjectStore.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	return storage.NewLocalStorage(filepath.Join(cfg.TempDir, "mediafinders-documents"), cfg.ObjectStore.PublicBaseURL), nil
}
