package httpapi

import "net/http"

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/health", handler.Health)

	mux.HandleFunc("GET /api/players-list", handler.ListPlayers)
	mux.HandleFunc("GET /api/players", handler.ListPlayersWithStats)
	mux.HandleFunc("GET /api/players/{id}", handler.GetPlayer)
	mux.HandleFunc("POST /api/players", handler.CreatePlayer)
	mux.HandleFunc("PUT /api/players/{id}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /api/players/{id}", handler.DeletePlayer)
	mux.HandleFunc("GET /api/check-player-id/{id}", handler.CheckPlayerID)

	mux.HandleFunc("GET /api/sessions", handler.ListSessions)
	mux.HandleFunc("POST /api/sessions", handler.CreateSession)
	mux.HandleFunc("POST /api/player-sessions", handler.RecordSessionStats)
	mux.HandleFunc("GET /api/players/{id}/sessions", handler.ListPlayerSessions)
	mux.HandleFunc("GET /api/sessions/{id}/players", handler.ListSessionPlayers)

	mux.HandleFunc("GET /api/dashboard", handler.GetDashboard)

	// Unmatched API paths must answer JSON, not the SPA fallback.
	mux.HandleFunc("/api/", notFoundAPI)
}

func notFoundAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusNotFound, errorBody{Error: "not found"})
}
