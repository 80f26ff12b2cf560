package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/contests", handler.ListContests)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
	// Anonymous callers get plain standings; authenticated callers also get
	// their best-ranked entry.
	mux.Handle("GET /v1/contests/{contestID}/leaderboard", OptionalAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/contests/{contestID}/me", RequireAuth(verifier, http.HandlerFunc(handler.GetContestForMe)))
	mux.Handle("POST /v1/contests/{contestID}/enroll", RequireAuth(verifier, http.HandlerFunc(handler.Enroll)))
	mux.Handle("GET /v1/contests/{contestID}/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamScore)))
	mux.Handle("GET /v1/enrollments/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyEnrollments)))

	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("PUT /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("PATCH /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.RenameTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTeam)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("GET /v1/admin/contests", admin(handler.AdminListContests))
	mux.Handle("POST /v1/admin/contests", admin(handler.AdminCreateContest))
	mux.Handle("GET /v1/admin/contests/{contestID}", admin(handler.AdminGetContest))
	mux.Handle("PUT /v1/admin/contests/{contestID}", admin(handler.AdminUpdateContest))
	mux.Handle("DELETE /v1/admin/contests/{contestID}", admin(handler.AdminDeleteContest))
	mux.Handle("POST /v1/admin/contests/{contestID}/enroll-teams", admin(handler.AdminBulkEnroll))
	mux.Handle("DELETE /v1/admin/contests/{contestID}/enrollments", admin(handler.AdminUnenroll))
	mux.Handle("GET /v1/admin/slots", admin(handler.AdminListSlots))
	mux.Handle("GET /v1/admin/slots/{slotID}", admin(handler.AdminGetSlot))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/player-points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestPlayerPoints)))
	mux.Handle("POST /v1/internal/jobs/leaderboard-warmup", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLeaderboardWarmupJob)))
}
