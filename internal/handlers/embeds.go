package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/logging"
)

// EmbedHandler exposes embed metadata, player markup and platform search.
type EmbedHandler struct {
	Registry EmbedRegistry
}

type embedResponse struct {
	Platform     string `json:"platform"`
	EmbedID      string `json:"embedId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Copyright    string `json:"copyright"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Source       string `json:"source"`
	IFrame       string `json:"iframe"`
}

// Platforms handles GET /api/v1/embeds.
func (h EmbedHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string][]string{"platforms": h.Registry.Platforms()})
}

// Show handles GET /api/v1/embeds/{platform}/{id}. Query parameters are
// interpreted as iframe options.
func (h EmbedHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	finder, opts, ok := h.resolve(w, r)
	if !ok {
		return
	}

	feedErr := func(err error) {
		// Anything going wrong while reading the feed is the platform's fault.
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		respondError(ctx, w, status, err)
	}

	title, err := finder.MediaTitle(ctx)
	if err != nil {
		feedErr(err)
		return
	}
	description, _ := finder.MediaDescription(ctx)
	copyright, _ := finder.MediaCopyright(ctx)
	thumbnail, _ := finder.ThumbnailURL(ctx)

	source, err := finder.Source(opts)
	if err != nil {
		respondError(ctx, w, statusForError(err), err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, embedResponse{
		Platform:     finder.Platform(),
		EmbedID:      finder.EmbedID(),
		Title:        title,
		Description:  description,
		Copyright:    copyright,
		ThumbnailURL: thumbnail,
		Source:       source,
		IFrame:       embeds.RenderIFrame(source, opts),
	})
}

// IFrame handles GET /api/v1/embeds/{platform}/{id}/iframe and returns raw HTML.
func (h EmbedHandler) IFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	finder, opts, ok := h.resolve(w, r)
	if !ok {
		return
	}

	markup, err := finder.IFrame(opts)
	if err != nil {
		respondError(ctx, w, statusForError(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markup)); err != nil {
		logging.FromContext(ctx).Error("write iframe markup", "error", err)
	}
}

// Search handles GET /api/v1/embeds/{platform}/search?q=&author=&max=.
func (h EmbedHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	term := strings.TrimSpace(query.Get("q"))
	if term == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "q is required"})
		return
	}

	maxResults := 0
	if raw := query.Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "max must be a non-negative integer"})
			return
		}
		maxResults = n
	}

	feed, err := h.Registry.Search(ctx, r.PathValue("platform"), term, strings.TrimSpace(query.Get("author")), maxResults)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		respondError(ctx, w, status, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(feed.Raw()); err != nil {
		logging.FromContext(ctx).Error("write search feed", "error", err)
	}
}

func (h EmbedHandler) resolve(w http.ResponseWriter, r *http.Request) (*embeds.Finder, embeds.IFrameOptions, bool) {
	ctx := r.Context()

	finder, err := h.Registry.Finder(r.PathValue("platform"), r.PathValue("id"))
	if err != nil {
		respondError(ctx, w, statusForError(err), err)
		return nil, embeds.IFrameOptions{}, false
	}

	opts, err := embeds.ResolveIFrameOptions(flattenQuery(r.URL.Query()))
	if err != nil {
		respondError(ctx, w, statusForError(err), err)
		return nil, embeds.IFrameOptions{}, false
	}

	return finder, opts, true
}

func flattenQuery(values url.Values) map[string]string {
	flat := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			flat[key] = v[0]
		}
	}
	return flat
}
