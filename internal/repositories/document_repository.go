package repositories

import (
	"context"

	"github.com/vidfriends/mediafinders/internal/models"
)

// DocumentRepository exposes data access for documents and their translations.
type DocumentRepository interface {
	Create(ctx context.Context, doc models.Document) error
	FindByEmbed(ctx context.Context, embedID, platform string) (models.Document, error)
	EmbedDocumentExists(ctx context.Context, embedID, platform string) (bool, error)
	Locales(ctx context.Context) ([]string, error)
}
