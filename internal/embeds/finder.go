package embeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/vidfriends/mediafinders/internal/logging"
	"github.com/vidfriends/mediafinders/internal/models"
	"github.com/vidfriends/mediafinders/internal/thumbnails"
)

// Platform describes one external media provider: where its API lives, how
// its player is embedded, and where the interesting fields sit in its feed.
type Platform interface {
	// Name is the platform tag stored on documents, e.g. "youtube".
	Name() string
	// FeedURL builds the metadata API URL for embedID. key may be empty.
	FeedURL(embedID, key string) string
	// Source returns the embeddable player URL for embedID.
	Source(embedID string, opts IFrameOptions) string
	MediaTitle(feed Feed) string
	MediaDescription(feed Feed) string
	MediaCopyright(feed Feed) string
	ThumbnailURL(feed Feed) string
}

// Searcher is implemented by platforms exposing a search API.
type Searcher interface {
	SearchURL(term, author string, maxResults int, key string) string
}

// MetaInjector lets a platform replace the default per-locale metadata injection.
type MetaInjector interface {
	InjectMeta(doc *models.Document, feed Feed, locales []string)
}

// URLResolver is implemented by platforms whose media URLs do not end in the
// embed id.
type URLResolver interface {
	EmbedIDFromURL(u *url.URL) (string, error)
}

// MediaChecker is implemented by platforms that answer unknown ids with a
// well-formed but media-less feed.
type MediaChecker interface {
	HasMedia(feed Feed) bool
}

// DocumentLookup is the persistence side consulted while creating documents.
type DocumentLookup interface {
	EmbedDocumentExists(ctx context.Context, embedID, platform string) (bool, error)
	// Locales lists the known translations documents should be written in.
	Locales(ctx context.Context) ([]string, error)
}

// DocumentFactory materializes an unsaved document from a local file.
// A nil document with a nil error means nothing could be produced.
type DocumentFactory interface {
	FromFile(ctx context.Context, file *thumbnails.File) (*models.Document, error)
}

// ThumbnailDownloader fetches a thumbnail into a local file, or returns nil.
type ThumbnailDownloader interface {
	Download(ctx context.Context, url, prefix string) *thumbnails.File
}

// DefaultSearchResults is used when SearchFeed is called without a positive limit.
const DefaultSearchResults = 15

// Finder resolves one embed id against one platform. The feed is fetched at
// most once per Finder; the outcome, success or failure, is kept for the
// lifetime of the value. A Finder is not safe for concurrent use.
type Finder struct {
	platform   Platform
	fetcher    FeedFetcher
	thumbnails ThumbnailDownloader
	embedID    string

	// Key is the platform access token (API key, client id) appended to feed URLs.
	Key string

	state   feedState
	feed    Feed
	feedErr error
}

// NewFinder validates rawID and returns a Finder bound to platform.
func NewFinder(platform Platform, rawID string, fetcher FeedFetcher, downloader ThumbnailDownloader) (*Finder, error) {
	if platform == nil {
		return nil, ErrUnknownPlatform
	}
	embedID, err := ValidateEmbedID(rawID)
	if err != nil {
		return nil, err
	}
	if fetcher == nil {
		fetcher = NewHTTPFetcher(nil)
	}
	if downloader == nil {
		downloader = thumbnails.NewDownloader(nil, "")
	}
	return &Finder{
		platform:   platform,
		fetcher:    fetcher,
		thumbnails: downloader,
		embedID:    embedID,
	}, nil
}

// EmbedID returns the validated identifier.
func (f *Finder) EmbedID() string { return f.embedID }

// Platform returns the platform tag.
func (f *Finder) Platform() string { return f.platform.Name() }

// Feed returns the parsed API feed, fetching it on first use.
func (f *Finder) Feed(ctx context.Context) (Feed, error) {
	if f.state == feedUnfetched {
		f.load(ctx)
	}
	return f.feed, f.feedErr
}

// Exists reports whether the platform returned a usable feed for the embed id.
func (f *Finder) Exists(ctx context.Context) bool {
	_, err := f.Feed(ctx)
	return err == nil
}

func (f *Finder) load(ctx context.Context) {
	ctx, span := logging.StartSpan(ctx, "embeds.feed",
		slog.String("platform", f.platform.Name()),
		slog.String("embed_id", f.embedID),
	)
	defer span.End()

	body, err := f.fetcher.Fetch(ctx, f.platform.FeedURL(f.embedID, f.Key))
	if err == nil {
		f.feed, err = ParseFeed(body)
	}
	if checker, ok := f.platform.(MediaChecker); ok && err == nil && !checker.HasMedia(f.feed) {
		err = ErrEmptyFeed
	}

	if err != nil {
		f.state = feedFailed
		f.feed = Feed{}
		f.feedErr = err
		logging.FromContext(ctx).Warn("embed feed unavailable", "error", err)
		return
	}
	f.state = feedFetched
}

// Source resolves the embeddable player URL.
func (f *Finder) Source(opts IFrameOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return f.platform.Source(f.embedID, opts), nil
}

// IFrame renders the player markup for the embed.
func (f *Finder) IFrame(opts IFrameOptions) (string, error) {
	src, err := f.Source(opts)
	if err != nil {
		return "", err
	}
	return RenderIFrame(src, opts), nil
}

// MediaTitle returns the media title from the feed.
func (f *Finder) MediaTitle(ctx context.Context) (string, error) {
	return f.extract(ctx, f.platform.MediaTitle)
}

// MediaDescription returns the media description from the feed.
func (f *Finder) MediaDescription(ctx context.Context) (string, error) {
	return f.extract(ctx, f.platform.MediaDescription)
}

// MediaCopyright returns the author or channel credited for the media.
func (f *Finder) MediaCopyright(ctx context.Context) (string, error) {
	return f.extract(ctx, f.platform.MediaCopyright)
}

// ThumbnailURL returns the external URL of the media preview image.
func (f *Finder) ThumbnailURL(ctx context.Context) (string, error) {
	return f.extract(ctx, f.platform.ThumbnailURL)
}

func (f *Finder) extract(ctx context.Context, field func(Feed) string) (string, error) {
	feed, err := f.Feed(ctx)
	if err != nil {
		return "", err
	}
	return field(feed), nil
}

// SearchFeed queries the platform search API. Results are not memoized.
func (f *Finder) SearchFeed(ctx context.Context, term, author string, maxResults int) (Feed, error) {
	return Search(ctx, f.platform, f.fetcher, f.Key, term, author, maxResults)
}

// Search queries platform's search API without needing an embed id.
func Search(ctx context.Context, platform Platform, fetcher FeedFetcher, key, term, author string, maxResults int) (Feed, error) {
	searcher, ok := platform.(Searcher)
	if !ok {
		return Feed{}, ErrSearchUnsupported
	}
	if maxResults <= 0 {
		maxResults = DefaultSearchResults
	}
	if fetcher == nil {
		fetcher = NewHTTPFetcher(nil)
	}
	body, err := fetcher.Fetch(ctx, searcher.SearchURL(term, author, maxResults, key))
	if err != nil {
		return Feed{}, err
	}
	return ParseFeed(body)
}

// DownloadThumbnail fetches the media thumbnail into a temporary file. It
// returns nil when the feed is unavailable or the download fails.
func (f *Finder) DownloadThumbnail(ctx context.Context) *thumbnails.File {
	url, err := f.ThumbnailURL(ctx)
	if err != nil || url == "" {
		return nil
	}
	return f.thumbnails.Download(ctx, url, f.embedID)
}

// CreateDocumentFromFeed downloads the media thumbnail and turns it into a new,
// unsaved document carrying the embed id, platform and per-locale metadata.
// Committing the document is left to the caller. The temporary thumbnail is
// removed once the factory has consumed it.
func (f *Finder) CreateDocumentFromFeed(ctx context.Context, lookup DocumentLookup, factory DocumentFactory) (doc *models.Document, err error) {
	ctx, span := logging.StartSpan(ctx, "embeds.create_document",
		slog.String("platform", f.platform.Name()),
		slog.String("embed_id", f.embedID),
	)
	defer func() {
		if err != nil {
			span.Fail(err)
		}
		span.End()
	}()

	file := f.DownloadThumbnail(ctx)
	if file != nil {
		defer func() {
			if rmErr := file.Remove(); rmErr != nil {
				logging.FromContext(ctx).Warn("remove thumbnail temp file", "path", file.Path, "error", rmErr)
			}
		}()
	}

	if !f.Exists(ctx) || file == nil {
		return nil, ErrNoEmbedDocument
	}

	exists, err := lookup.EmbedDocumentExists(ctx, f.embedID, f.platform.Name())
	if err != nil {
		return nil, fmt.Errorf("check existing embed document: %w", err)
	}
	if exists {
		return nil, ErrDuplicateDocument
	}

	doc, err = factory.FromFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	if doc == nil {
		return nil, ErrPersistenceFailed
	}

	doc.SetEmbed(f.embedID, f.platform.Name())

	if err := f.injectMeta(ctx, lookup, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (f *Finder) injectMeta(ctx context.Context, lookup DocumentLookup, doc *models.Document) error {
	locales, err := lookup.Locales(ctx)
	if err != nil {
		return fmt.Errorf("list document locales: %w", err)
	}

	feed, err := f.Feed(ctx)
	if err != nil {
		return err
	}

	if injector, ok := f.platform.(MetaInjector); ok {
		injector.InjectMeta(doc, feed, locales)
		return nil
	}

	title := f.platform.MediaTitle(feed)
	description := f.platform.MediaDescription(feed)
	copyright := f.platform.MediaCopyright(feed)
	for _, locale := range locales {
		doc.SetTranslation(locale, title, description, copyright)
	}
	return nil
}
