package handlers

import (
	"net/http"
	"strings"
)

// PictureHandler resolves profile pictures for social network aliases.
type PictureHandler struct {
	Pictures ProfilePictureFinder
}

// Show handles GET /api/v1/profile-pictures/{alias}.
func (h PictureHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	alias := strings.TrimSpace(r.PathValue("alias"))
	if alias == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "alias is required"})
		return
	}

	url, err := h.Pictures.PictureURL(ctx, alias)
	if err != nil {
		respondError(ctx, w, http.StatusBadGateway, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"alias": alias, "url": url})
}
