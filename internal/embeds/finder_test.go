package embeds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vidfriends/mediafinders/internal/models"
	"github.com/vidfriends/mediafinders/internal/thumbnails"
)

type fetcherStub struct {
	body  []byte
	err   error
	calls int
	urls  []string
}

func (f *fetcherStub) Fetch(ctx context.Context, url string) ([]byte, error) {
	_ = ctx
	f.calls++
	f.urls = append(f.urls, url)
	return f.body, f.err
}

type platformStub struct{}

func (platformStub) Name() string { return "stub" }

func (platformStub) FeedURL(embedID, key string) string {
	return "https://api.stub.test/media/" + embedID + "?key=" + key
}

func (platformStub) Source(embedID string, opts IFrameOptions) string {
	src := "https://player.stub.test/" + embedID
	if opts.Autoplay {
		src += "?autoplay=1"
	}
	return src
}

func (platformStub) MediaTitle(feed Feed) string       { return feed.String("title") }
func (platformStub) MediaDescription(feed Feed) string { return feed.String("description") }
func (platformStub) MediaCopyright(feed Feed) string   { return feed.String("author") }
func (platformStub) ThumbnailURL(feed Feed) string     { return feed.String("thumbnail") }

type searchingPlatformStub struct {
	platformStub
}

func (searchingPlatformStub) SearchURL(term, author string, maxResults int, key string) string {
	return "https://api.stub.test/search?q=" + term + "&author=" + author + "&max=" + strconv.Itoa(maxResults) + "&key=" + key
}

type injectingPlatformStub struct {
	platformStub
	locales []string
}

func (p *injectingPlatformStub) InjectMeta(doc *models.Document, feed Feed, locales []string) {
	p.locales = locales
	doc.SetTranslation("xx", strings.ToUpper(feed.String("title")), "", "")
}

type downloaderStub struct {
	file   *thumbnails.File
	calls  int
	url    string
	prefix string
}

func (d *downloaderStub) Download(ctx context.Context, url, prefix string) *thumbnails.File {
	_ = ctx
	d.calls++
	d.url = url
	d.prefix = prefix
	return d.file
}

type lookupStub struct {
	exists    bool
	existsErr error
	locales   []string
	checked   []string
}

func (l *lookupStub) EmbedDocumentExists(ctx context.Context, embedID, platform string) (bool, error) {
	_ = ctx
	l.checked = append(l.checked, embedID+"@"+platform)
	return l.exists, l.existsErr
}

func (l *lookupStub) Locales(ctx context.Context) ([]string, error) {
	_ = ctx
	return l.locales, nil
}

type factoryStub struct {
	doc   *models.Document
	err   error
	calls int
	file  *thumbnails.File
}

func (f *factoryStub) FromFile(ctx context.Context, file *thumbnails.File) (*models.Document, error) {
	_ = ctx
	f.calls++
	f.file = file
	return f.doc, f.err
}

const stubFeed = `{"title":"Clip","description":"A clip","author":"Someone","thumbnail":"https://img.stub.test/abc.jpg"}`

func newTempThumbnail(t *testing.T) *thumbnails.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abc_thumb.jpg")
	if err := os.WriteFile(path, []byte("jpegdata"), 0o600); err != nil {
		t.Fatalf("write thumbnail: %v", err)
	}
	return &thumbnails.File{Path: path, Name: "abc_thumb.jpg", Size: 8}
}

func newStubFinder(t *testing.T, platform Platform, fetcher FeedFetcher, downloader ThumbnailDownloader) *Finder {
	t.Helper()
	finder, err := NewFinder(platform, "https://stub.test/watch/abc?x=1", fetcher, downloader)
	if err != nil {
		t.Fatalf("NewFinder returned error: %v", err)
	}
	return finder
}

func TestNewFinderValidatesInput(t *testing.T) {
	if _, err := NewFinder(platformStub{}, "https://stub.test/", nil, nil); !errors.Is(err, ErrInvalidEmbedID) {
		t.Fatalf("expected ErrInvalidEmbedID, got %v", err)
	}
	if _, err := NewFinder(nil, "abc", nil, nil); !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestFinderEmptyFeedIsFetchedOnce(t *testing.T) {
	fetcher := &fetcherStub{body: []byte("")}
	finder := newStubFinder(t, platformStub{}, fetcher, &downloaderStub{})

	if finder.Exists(context.Background()) {
		t.Fatal("expected empty feed to report not existing")
	}
	if finder.Exists(context.Background()) {
		t.Fatal("expected repeated Exists to stay false")
	}
	if _, err := finder.MediaTitle(context.Background()); !errors.Is(err, ErrEmptyFeed) {
		t.Fatalf("expected ErrEmptyFeed, got %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetcher.calls)
	}
}

func TestFinderFetchErrorIsMemoized(t *testing.T) {
	fetcher := &fetcherStub{err: &FetchError{URL: "u", StatusCode: 404, Reason: "Not Found"}}
	finder := newStubFinder(t, platformStub{}, fetcher, &downloaderStub{})

	for i := 0; i < 3; i++ {
		_, err := finder.Feed(context.Background())
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetcher.calls)
	}
}

func TestFinderAccessorsShareOneFetch(t *testing.T) {
	fetcher := &fetcherStub{body: []byte(stubFeed)}
	finder := newStubFinder(t, platformStub{}, fetcher, &downloaderStub{})
	finder.Key = "secret"
	ctx := context.Background()

	title, _ := finder.MediaTitle(ctx)
	description, _ := finder.MediaDescription(ctx)
	copyright, _ := finder.MediaCopyright(ctx)
	thumbnail, err := finder.ThumbnailURL(ctx)
	if err != nil {
		t.Fatalf("ThumbnailURL returned error: %v", err)
	}

	if title != "Clip" || description != "A clip" || copyright != "Someone" || thumbnail != "https://img.stub.test/abc.jpg" {
		t.Fatalf("unexpected metadata: %q %q %q %q", title, description, copyright, thumbnail)
	}
	if !finder.Exists(ctx) {
		t.Fatal("expected feed to exist")
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetcher.calls)
	}
	if want := "https://api.stub.test/media/abc?key=secret"; fetcher.urls[0] != want {
		t.Fatalf("unexpected feed url %q, want %q", fetcher.urls[0], want)
	}
}

func TestFinderIFrame(t *testing.T) {
	finder := newStubFinder(t, platformStub{}, &fetcherStub{}, &downloaderStub{})

	got, err := finder.IFrame(IFrameOptions{Width: 320, Autoplay: true})
	if err != nil {
		t.Fatalf("IFrame returned error: %v", err)
	}
	want := `<iframe src="https://player.stub.test/abc?autoplay=1" width="320" height="200" frameborder="0"></iframe>`
	if got != want {
		t.Fatalf("unexpected markup:\n got %s\nwant %s", got, want)
	}

	if _, err := finder.Source(IFrameOptions{Height: -5}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestFinderSearchFeed(t *testing.T) {
	fetcher := &fetcherStub{body: []byte(`{"items":[{"id":"1"}]}`)}
	finder := newStubFinder(t, searchingPlatformStub{}, fetcher, &downloaderStub{})
	finder.Key = "k"

	feed, err := finder.SearchFeed(context.Background(), "cats", "me", 0)
	if err != nil {
		t.Fatalf("SearchFeed returned error: %v", err)
	}
	if feed.String("items.0.id") != "1" {
		t.Fatalf("unexpected search feed %s", feed.Raw())
	}
	if want := "https://api.stub.test/search?q=cats&author=me&max=15&key=k"; fetcher.urls[0] != want {
		t.Fatalf("unexpected search url %q, want %q", fetcher.urls[0], want)
	}

	if _, err := finder.SearchFeed(context.Background(), "cats", "", 0); err != nil {
		t.Fatalf("second SearchFeed returned error: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected search results not to be memoized, got %d fetches", fetcher.calls)
	}
}

func TestFinderSearchUnsupported(t *testing.T) {
	finder := newStubFinder(t, platformStub{}, &fetcherStub{}, &downloaderStub{})
	if _, err := finder.SearchFeed(context.Background(), "cats", "", 5); !errors.Is(err, ErrSearchUnsupported) {
		t.Fatalf("expected ErrSearchUnsupported, got %v", err)
	}
}

func TestCreateDocumentFromFeed(t *testing.T) {
	file := newTempThumbnail(t)
	downloader := &downloaderStub{file: file}
	lookup := &lookupStub{locales: []string{"en", "fr"}}
	factory := &factoryStub{doc: &models.Document{ID: "doc-1", Filename: file.Name}}
	finder := newStubFinder(t, platformStub{}, &fetcherStub{body: []byte(stubFeed)}, downloader)

	doc, err := finder.CreateDocumentFromFeed(context.Background(), lookup, factory)
	if err != nil {
		t.Fatalf("CreateDocumentFromFeed returned error: %v", err)
	}

	if doc.EmbedID != "abc" || doc.EmbedPlatform != "stub" {
		t.Fatalf("unexpected embed fields: %+v", doc)
	}
	if len(doc.Translations) != 2 {
		t.Fatalf("expected one translation per locale, got %+v", doc.Translations)
	}
	fr, ok := doc.Translation("fr")
	if !ok || fr.Name != "Clip" || fr.Description != "A clip" || fr.Copyright != "Someone" {
		t.Fatalf("unexpected fr translation: %+v", fr)
	}
	if downloader.url != "https://img.stub.test/abc.jpg" || downloader.prefix != "abc" {
		t.Fatalf("unexpected download call: %q %q", downloader.url, downloader.prefix)
	}
	if factory.file != file {
		t.Fatal("expected factory to receive the downloaded file")
	}
	if lookup.checked[0] != "abc@stub" {
		t.Fatalf("unexpected duplicate lookup %v", lookup.checked)
	}
	if _, err := os.Stat(file.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temporary thumbnail to be removed, stat err = %v", err)
	}
}

func TestCreateDocumentFromFeedUsesPlatformInjector(t *testing.T) {
	platform := &injectingPlatformStub{}
	lookup := &lookupStub{locales: []string{"en"}}
	factory := &factoryStub{doc: &models.Document{ID: "doc-1"}}
	finder := newStubFinder(t, platform, &fetcherStub{body: []byte(stubFeed)}, &downloaderStub{file: newTempThumbnail(t)})

	doc, err := finder.CreateDocumentFromFeed(context.Background(), lookup, factory)
	if err != nil {
		t.Fatalf("CreateDocumentFromFeed returned error: %v", err)
	}
	if len(platform.locales) != 1 || platform.locales[0] != "en" {
		t.Fatalf("expected injector to receive locales, got %v", platform.locales)
	}
	if tr, ok := doc.Translation("xx"); !ok || tr.Name != "CLIP" {
		t.Fatalf("expected injected translation, got %+v", doc.Translations)
	}
}

func TestCreateDocumentFromFeedRejectsDuplicates(t *testing.T) {
	file := newTempThumbnail(t)
	lookup := &lookupStub{exists: true}
	factory := &factoryStub{doc: &models.Document{}}
	finder := newStubFinder(t, platformStub{}, &fetcherStub{body: []byte(stubFeed)}, &downloaderStub{file: file})

	_, err := finder.CreateDocumentFromFeed(context.Background(), lookup, factory)
	if !errors.Is(err, ErrDuplicateDocument) {
		t.Fatalf("expected ErrDuplicateDocument, got %v", err)
	}
	if factory.calls != 0 {
		t.Fatalf("expected factory not to be called, got %d calls", factory.calls)
	}
	if _, err := os.Stat(file.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temporary thumbnail to be removed, stat err = %v", err)
	}
}

func TestCreateDocumentFromFeedWithoutMedia(t *testing.T) {
	downloader := &downloaderStub{file: newTempThumbnail(t)}
	factory := &factoryStub{doc: &models.Document{}}
	finder := newStubFinder(t, platformStub{}, &fetcherStub{body: []byte("null")}, downloader)

	_, err := finder.CreateDocumentFromFeed(context.Background(), &lookupStub{}, factory)
	if !errors.Is(err, ErrNoEmbedDocument) {
		t.Fatalf("expected ErrNoEmbedDocument, got %v", err)
	}
	if downloader.calls != 0 || factory.calls != 0 {
		t.Fatalf("expected no download or factory calls, got %d and %d", downloader.calls, factory.calls)
	}
}

func TestCreateDocumentFromFeedWithoutThumbnail(t *testing.T) {
	factory := &factoryStub{doc: &models.Document{}}
	finder := newStubFinder(t, platformStub{}, &fetcherStub{body: []byte(stubFeed)}, &downloaderStub{})

	_, err := finder.CreateDocumentFromFeed(context.Background(), &lookupStub{}, factory)
	if !errors.Is(err, ErrNoEmbedDocument) {
		t.Fatalf("expected ErrNoEmbedDocument, got %v", err)
	}
	if factory.calls != 0 {
		t.Fatalf("expected factory not to be called, got %d calls", factory.calls)
	}
}

func TestCreateDocumentFromFeedFactoryFailures(t *testing.T) {
	storageErr := errors.New("bucket unavailable")
	tests := []struct {
		name    string
		factory *factoryStub
		wantErr error
	}{
		{name: "nothing produced", factory: &factoryStub{}, wantErr: ErrPersistenceFailed},
		{name: "factory error", factory: &factoryStub{err: storageErr}, wantErr: storageErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := newStubFinder(t, platformStub{}, &fetcherStub{body: []byte(stubFeed)}, &downloaderStub{file: newTempThumbnail(t)})

			_, err := finder.CreateDocumentFromFeed(context.Background(), &lookupStub{}, tt.factory)
			if !errors.Is(err, ErrPersistenceFailed) {
				t.Fatalf("expected ErrPersistenceFailed, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v in chain, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateDocumentFromFeedLookupFailure(t *testing.T) {
	lookupErr := errors.New("db down")
	factory := &factoryStub{doc: &models.Document{}}
	finder := newStubFinder(t, platformStub{}, &fetcherStub{body: []byte(stubFeed)}, &downloaderStub{file: newTempThumbnail(t)})

	_, err := finder.CreateDocumentFromFeed(context.Background(), &lookupStub{existsErr: lookupErr}, factory)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if factory.calls != 0 {
		t.Fatal("expected factory not to be called")
	}
}
