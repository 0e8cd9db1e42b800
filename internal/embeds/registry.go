package embeds

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

type registration struct {
	platform Platform
	key      string
}

// Registry holds the platforms the service can resolve embeds against, along
// with their access keys and the hostnames their media URLs live on.
type Registry struct {
	fetcher    FeedFetcher
	thumbnails ThumbnailDownloader
	platforms  map[string]registration
	hosts      map[string]string
}

// NewRegistry returns an empty registry whose finders share fetcher and downloader.
func NewRegistry(fetcher FeedFetcher, downloader ThumbnailDownloader) *Registry {
	return &Registry{
		fetcher:    fetcher,
		thumbnails: downloader,
		platforms:  make(map[string]registration),
		hosts:      make(map[string]string),
	}
}

// NewDefaultRegistry registers every built-in platform with the given keys,
// indexed by platform name.
func NewDefaultRegistry(fetcher FeedFetcher, downloader ThumbnailDownloader, keys map[string]string) *Registry {
	r := NewRegistry(fetcher, downloader)
	r.Register(YouTube{}, keys["youtube"], "youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be")
	r.Register(Vimeo{}, keys["vimeo"], "vimeo.com", "www.vimeo.com", "player.vimeo.com")
	r.Register(Dailymotion{}, keys["dailymotion"], "dailymotion.com", "www.dailymotion.com", "dai.ly")
	r.Register(SoundCloud{}, keys["soundcloud"], "soundcloud.com", "www.soundcloud.com", "api.soundcloud.com")
	return r
}

// Register adds or replaces platform. hosts are matched case-insensitively by Match.
func (r *Registry) Register(platform Platform, key string, hosts ...string) {
	name := platform.Name()
	r.platforms[name] = registration{platform: platform, key: key}
	for _, h := range hosts {
		r.hosts[strings.ToLower(h)] = name
	}
}

// Platform returns the platform registered under name.
func (r *Registry) Platform(name string) (Platform, bool) {
	reg, ok := r.platforms[name]
	return reg.platform, ok
}

// Platforms lists registered platform names in sorted order.
func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Finder builds a Finder for rawID on the named platform.
func (r *Registry) Finder(name, rawID string) (*Finder, error) {
	reg, ok := r.platforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
	}
	finder, err := NewFinder(reg.platform, rawID, r.fetcher, r.thumbnails)
	if err != nil {
		return nil, err
	}
	finder.Key = reg.key
	return finder, nil
}

// Match resolves a full media URL to the platform it belongs to.
func (r *Registry) Match(rawURL string) (string, error) {
	name, _, err := r.match(rawURL)
	return name, err
}

func (r *Registry) match(rawURL string) (string, *url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", nil, fmt.Errorf("%w: %q is not an absolute url", ErrUnknownPlatform, rawURL)
	}
	name, ok := r.hosts[strings.ToLower(u.Hostname())]
	if !ok {
		return "", nil, fmt.Errorf("%w: no platform serves %q", ErrUnknownPlatform, u.Hostname())
	}
	return name, u, nil
}

// FinderForURL matches rawURL to a platform and builds a Finder from it.
// Platforms implementing URLResolver extract the embed id themselves.
func (r *Registry) FinderForURL(rawURL string) (*Finder, error) {
	name, u, err := r.match(rawURL)
	if err != nil {
		return nil, err
	}
	rawID := rawURL
	if resolver, ok := r.platforms[name].platform.(URLResolver); ok {
		if rawID, err = resolver.EmbedIDFromURL(u); err != nil {
			return nil, err
		}
	}
	return r.Finder(name, rawID)
}

// Search runs a search on the named platform.
func (r *Registry) Search(ctx context.Context, name, term, author string, maxResults int) (Feed, error) {
	reg, ok := r.platforms[name]
	if !ok {
		return Feed{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
	}
	return Search(ctx, reg.platform, r.fetcher, reg.key, term, author, maxResults)
}
