package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/logging"
	"github.com/vidfriends/mediafinders/internal/models"
)

// DocumentHandler turns embeds into stored documents.
type DocumentHandler struct {
	Registry  EmbedRegistry
	Documents DocumentStore
	Factory   embeds.DocumentFactory
}

type createEmbedDocumentRequest struct {
	Platform string `json:"platform"`
	EmbedID  string `json:"embedId"`
	URL      string `json:"url"`
}

type translationResponse struct {
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Copyright   string `json:"copyright"`
}

type documentResponse struct {
	ID            string                `json:"id"`
	Filename      string                `json:"filename"`
	MimeType      string                `json:"mimeType"`
	AssetURL      string                `json:"assetUrl"`
	Size          int64                 `json:"size"`
	EmbedID       string                `json:"embedId"`
	EmbedPlatform string                `json:"embedPlatform"`
	Translations  []translationResponse `json:"translations"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// CreateFromEmbed handles POST /api/v1/documents/embeds.
func (h DocumentHandler) CreateFromEmbed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Documents == nil || h.Factory == nil {
		logger.Error("document dependencies unavailable", "hasDocuments", h.Documents != nil, "hasFactory", h.Factory != nil)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "document services unavailable"})
		return
	}

	var req createEmbedDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid embed document payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var (
		finder *embeds.Finder
		err    error
	)
	switch {
	case strings.TrimSpace(req.URL) != "":
		finder, err = h.Registry.FinderForURL(req.URL)
	case strings.TrimSpace(req.Platform) != "":
		finder, err = h.Registry.Finder(strings.TrimSpace(req.Platform), req.EmbedID)
	default:
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "url or platform and embedId are required"})
		return
	}
	if err != nil {
		respondError(ctx, w, statusForError(err), err)
		return
	}

	doc, err := finder.CreateDocumentFromFeed(ctx, h.Documents, h.Factory)
	if err != nil {
		respondError(ctx, w, statusForError(err), err)
		return
	}

	if err := h.Documents.Create(ctx, *doc); err != nil {
		status := statusForError(err)
		if status == http.StatusConflict {
			// Lost a race with a concurrent request for the same embed.
			err = embeds.ErrDuplicateDocument
		}
		respondError(ctx, w, status, err)
		return
	}

	logger.Info("embed document created", "document_id", doc.ID, "platform", doc.EmbedPlatform, "embed_id", doc.EmbedID)
	respondJSON(ctx, w, http.StatusCreated, newDocumentResponse(doc))
}

func newDocumentResponse(doc *models.Document) documentResponse {
	resp := documentResponse{
		ID:            doc.ID,
		Filename:      doc.Filename,
		MimeType:      doc.MimeType,
		AssetURL:      doc.AssetURL,
		Size:          doc.Size,
		EmbedID:       doc.EmbedID,
		EmbedPlatform: doc.EmbedPlatform,
		Translations:  make([]translationResponse, 0, len(doc.Translations)),
		CreatedAt:     doc.CreatedAt,
	}
	for _, tr := range doc.Translations {
		resp.Translations = append(resp.Translations, translationResponse(tr))
	}
	return resp
}
