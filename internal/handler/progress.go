package handler

import (
	"net/http"

	"github.com/stackgarden/stackgarden/internal/session"
)

// HandleGetProgress returns the user's full progress snapshot
func HandleGetProgress(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		progress := svc.Progress(r.Context(), userID)
		respondJSON(w, http.StatusOK, progress)
	}
}

// HistoryResponse carries the date buckets and derived statistics together
type HistoryResponse struct {
	Buckets    interface{} `json:"buckets"`
	Statistics interface{} `json:"statistics"`
}

// HandleGetHistory returns grouped session history with statistics
func HandleGetHistory(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		buckets, stats := svc.History(r.Context(), userID)
		respondJSON(w, http.StatusOK, HistoryResponse{
			Buckets:    buckets,
			Statistics: stats,
		})
	}
}
