package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidfriends/mediafinders/internal/db"
	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/models"
)

// PostgresDocumentRepository provides PostgreSQL-backed persistence for documents.
type PostgresDocumentRepository struct {
	pool db.Pool
}

// NewPostgresDocumentRepository constructs a document repository backed by PostgreSQL.
func NewPostgresDocumentRepository(pool db.Pool) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{pool: pool}
}

// Create stores a document and its translations in a single transaction.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc models.Document) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin document transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
        INSERT INTO documents (id, filename, mime_type, asset_url, size, embed_id, embed_platform, created_at)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
    `, doc.ID, doc.Filename, doc.MimeType, doc.AssetURL, doc.Size, doc.EmbedID, doc.EmbedPlatform, doc.CreatedAt)
	if err != nil {
		return translateWriteError("insert document", err)
	}

	for _, tr := range doc.Translations {
		_, err = tx.Exec(ctx, `
            INSERT INTO document_translations (document_id, locale, name, description, copyright)
            VALUES ($1, $2, $3, $4, $5)
        `, doc.ID, tr.Locale, tr.Name, tr.Description, tr.Copyright)
		if err != nil {
			return translateWriteError("insert document translation "+tr.Locale, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return translateWriteError("commit document", err)
	}

	return nil
}

// FindByEmbed fetches the document mirroring the given embed, with its translations.
func (r *PostgresDocumentRepository) FindByEmbed(ctx context.Context, embedID, platform string) (models.Document, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Document{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id::TEXT, filename, mime_type, asset_url, size, embed_id, embed_platform, created_at
        FROM documents
        WHERE embed_id = $1 AND embed_platform = $2
    `, embedID, platform)

	var doc models.Document
	if err := row.Scan(&doc.ID, &doc.Filename, &doc.MimeType, &doc.AssetURL, &doc.Size, &doc.EmbedID, &doc.EmbedPlatform, &doc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Document{}, ErrNotFound
		}
		return models.Document{}, fmt.Errorf("select document by embed: %w", err)
	}

	rows, err := conn.Query(ctx, `
        SELECT locale, name, description, copyright
        FROM document_translations
        WHERE document_id = $1
        ORDER BY locale
    `, doc.ID)
	if err != nil {
		return models.Document{}, fmt.Errorf("query document translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr models.DocumentTranslation
		if err := rows.Scan(&tr.Locale, &tr.Name, &tr.Description, &tr.Copyright); err != nil {
			return models.Document{}, fmt.Errorf("scan document translation: %w", err)
		}
		doc.Translations = append(doc.Translations, tr)
	}

	if err := rows.Err(); err != nil {
		return models.Document{}, fmt.Errorf("iterate document translations: %w", err)
	}

	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, nil
}

// EmbedDocumentExists reports whether a document already mirrors the embed.
func (r *PostgresDocumentRepository) EmbedDocumentExists(ctx context.Context, embedID, platform string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	err = conn.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM documents WHERE embed_id = $1 AND embed_platform = $2)
    `, embedID, platform).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check embed document: %w", err)
	}

	return exists, nil
}

// Locales lists the configured translations, default locale first.
func (r *PostgresDocumentRepository) Locales(ctx context.Context) ([]string, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT locale
        FROM translations
        ORDER BY is_default DESC, position, locale
    `)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	var locales []string
	for rows.Next() {
		var locale string
		if err := rows.Scan(&locale); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		locales = append(locales, locale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}

	return locales, nil
}

func translateWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict
		case "23503":
			return ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ DocumentRepository = (*PostgresDocumentRepository)(nil)
var _ embeds.DocumentLookup = (*PostgresDocumentRepository)(nil)
