package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/models"
	"github.com/vidfriends/mediafinders/internal/thumbnails"
)

type fetchResult struct {
	body []byte
	err  error
}

// fetcherStub answers with the first response whose key is contained in the URL.
type fetcherStub struct {
	responses map[string]fetchResult
	urls      []string
}

func (f *fetcherStub) Fetch(ctx context.Context, url string) ([]byte, error) {
	_ = ctx
	f.urls = append(f.urls, url)
	for key, res := range f.responses {
		if strings.Contains(url, key) {
			return res.body, res.err
		}
	}
	return nil, &embeds.FetchError{URL: url, StatusCode: http.StatusNotFound, Reason: "Not Found"}
}

type downloaderStub struct {
	file *thumbnails.File
}

func (d downloaderStub) Download(ctx context.Context, url, prefix string) *thumbnails.File {
	return d.file
}

type documentStoreStub struct {
	exists    bool
	locales   []string
	created   []models.Document
	createErr error
}

func (s *documentStoreStub) EmbedDocumentExists(ctx context.Context, embedID, platform string) (bool, error) {
	return s.exists, nil
}

func (s *documentStoreStub) Locales(ctx context.Context) ([]string, error) {
	return s.locales, nil
}

func (s *documentStoreStub) Create(ctx context.Context, doc models.Document) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, doc)
	return nil
}

type factoryStub struct {
	calls int
}

func (f *factoryStub) FromFile(ctx context.Context, file *thumbnails.File) (*models.Document, error) {
	f.calls++
	return &models.Document{ID: "doc-1", Filename: file.Name, MimeType: "image/jpeg", Size: file.Size}, nil
}

type picturesStub struct {
	url   string
	err   error
	alias string
}

func (p *picturesStub) PictureURL(ctx context.Context, alias string) (string, error) {
	p.alias = alias
	return p.url, p.err
}

const vimeoFeed = `[{"id":76979871,"title":"The New Vimeo Player","description":"Player","user_name":"Vimeo Staff","thumbnail_large":"https://i.vimeocdn.com/video/452001751_640.jpg"}]`

func tempThumbnail(t *testing.T) *thumbnails.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "76979871_452001751_640.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o600); err != nil {
		t.Fatalf("write thumbnail: %v", err)
	}
	return &thumbnails.File{Path: path, Name: "76979871_452001751_640.jpg", Size: 4}
}

func newTestMux(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterRoutes(mux, deps)
	return mux
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}
