// Package documents materializes downloaded files into document records.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/vidfriends/mediafinders/internal/logging"
	"github.com/vidfriends/mediafinders/internal/models"
	"github.com/vidfriends/mediafinders/internal/thumbnails"
)

// ErrEmptyFile is returned when the file to materialize has no content.
var ErrEmptyFile = errors.New("document file is empty")

// Storage persists document assets and returns where they can be reached.
type Storage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// Factory uploads files to Storage and builds unsaved documents around them.
type Factory struct {
	Storage Storage
	NowFunc func() time.Time
	NewID   func() string
}

// NewFactory returns a Factory writing assets to storage.
func NewFactory(storage Storage) *Factory {
	return &Factory{Storage: storage}
}

// FromFile uploads file under documents/{id}/{name} and returns a document
// describing it. The document is not persisted.
func (f *Factory) FromFile(ctx context.Context, file *thumbnails.File) (*models.Document, error) {
	if file == nil {
		return nil, nil
	}
	if f.Storage == nil {
		return nil, errors.New("document storage is not configured")
	}

	fh, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open document file: %w", err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat document file: %w", err)
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	mime, err := mimetype.DetectReader(fh)
	if err != nil {
		return nil, fmt.Errorf("detect document type: %w", err)
	}
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind document file: %w", err)
	}

	id := f.newID()
	name := file.Name
	if name == "" {
		name = "asset" + mime.Extension()
	}
	key := path.Join("documents", id, name)

	location, err := f.Storage.Save(ctx, key, mime.String(), fh)
	if err != nil {
		return nil, fmt.Errorf("store document asset: %w", err)
	}

	logging.FromContext(ctx).Info("document asset stored", "document_id", id, "key", key, "mime", mime.String(), "size", info.Size())

	return &models.Document{
		ID:        id,
		Filename:  name,
		MimeType:  mime.String(),
		AssetURL:  location,
		Size:      info.Size(),
		CreatedAt: f.now(),
	}, nil
}

func (f *Factory) now() time.Time {
	if f.NowFunc != nil {
		return f.NowFunc()
	}
	return time.Now().UTC()
}

func (f *Factory) newID() string {
	if f.NewID != nil {
		return f.NewID()
	}
	return uuid.NewString()
}
