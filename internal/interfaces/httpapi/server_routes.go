package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/matches", handler.ListPastMatches)
	mux.HandleFunc("GET /v1/upcoming-matches", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/metadata", handler.GetMetadata)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
