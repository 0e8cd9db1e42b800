package handlers

import (
	"net/http"

	"github.com/vidfriends/mediafinders/internal/embeds"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{Database: deps.Database}
	embed := EmbedHandler{Registry: deps.Embeds}
	documents := DocumentHandler{Registry: deps.Embeds, Documents: deps.Documents, Factory: deps.DocumentFactory}
	pictures := PictureHandler{Pictures: deps.Pictures}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("GET /api/v1/embeds", embed.Platforms)
	// The literal segment wins over {id}, so an embed id of "search" is unreachable here.
	mux.HandleFunc("GET /api/v1/embeds/{platform}/search", embed.Search)
	mux.HandleFunc("GET /api/v1/embeds/{platform}/{id}", embed.Show)
	mux.HandleFunc("GET /api/v1/embeds/{platform}/{id}/iframe", embed.IFrame)
	mux.HandleFunc("POST /api/v1/documents/embeds", documents.CreateFromEmbed)
	mux.HandleFunc("GET /api/v1/profile-pictures/{alias}", pictures.Show)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Embeds          EmbedRegistry
	Documents       DocumentStore
	DocumentFactory embeds.DocumentFactory
	Pictures        ProfilePictureFinder
	Database        Pinger
}
