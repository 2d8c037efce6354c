package server

import "net/http"

func (s *Server) handleProfileStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := s.profile.Profile(ctx, UserID(ctx))
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, profile)
}
