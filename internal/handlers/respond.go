package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vidfriends/mediafinders/internal/embeds"
	"github.com/vidfriends/mediafinders/internal/logging"
	"github.com/vidfriends/mediafinders/internal/repositories"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logging.FromContext(ctx).Error("internal error", "error", err)
		message = http.StatusText(status)
	}
	respondJSON(ctx, w, status, map[string]string{"error": message})
}

// statusForError maps domain failures onto HTTP status codes.
func statusForError(err error) int {
	var fetchErr *embeds.FetchError
	switch {
	case errors.Is(err, embeds.ErrInvalidEmbedID),
		errors.Is(err, embeds.ErrUnknownOption),
		errors.Is(err, embeds.ErrInvalidOption),
		errors.Is(err, embeds.ErrSearchUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, embeds.ErrUnknownPlatform):
		return http.StatusNotFound
	case errors.Is(err, embeds.ErrDuplicateDocument), errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, embeds.ErrNoEmbedDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, embeds.ErrPersistenceFailed):
		return http.StatusInternalServerError
	case errors.As(err, &fetchErr),
		errors.Is(err, embeds.ErrEmptyFeed),
		errors.Is(err, embeds.ErrMalformedFeed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
