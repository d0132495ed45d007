package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/session"
	"github.com/stackgarden/stackgarden/internal/snapshot"
	"github.com/stackgarden/stackgarden/internal/store"
)

// StateResponse is the cloud-state fetch envelope. State is null for users
// the store has never seen.
type StateResponse struct {
	Success   bool                 `json:"success"`
	State     *snapshot.CloudState `json:"state"`
	UpdatedAt string               `json:"updatedAt,omitempty"`
}

// SaveStateResponse acknowledges a cloud-state write
type SaveStateResponse struct {
	Success   bool   `json:"success"`
	UpdatedAt string `json:"updatedAt"`
}

// HandleGetState fetches the stored cloud state for a user
func HandleGetState(st store.StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		rec, err := st.Get(r.Context(), userID)
		if err != nil {
			log.Error(ErrMsgGetStateFailed, "error", err, "user_id", userID)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		resp := StateResponse{Success: true}
		if rec != nil {
			resp.State = &rec.State
			resp.UpdatedAt = rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandlePutState validates and stores a cloud state payload. Writes are
// idempotent upserts keyed by user.
func HandlePutState(st store.StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if verr := snapshot.ValidateCloudState(body); verr != nil {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: map[string]string{string(verr.Code): verr.Message},
			})
			return
		}

		var state snapshot.CloudState
		if err := json.Unmarshal(body, &state); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		updatedAt, err := st.Put(r.Context(), userID, state)
		if err != nil {
			log.Error(ErrMsgSaveStateFailed, "error", err, "user_id", userID)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		respondJSON(w, http.StatusOK, SaveStateResponse{
			Success:   true,
			UpdatedAt: updatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
}

// HandleExport returns the versioned snapshot export for a user
func HandleExport(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		export := svc.Export(r.Context(), userID)
		respondJSON(w, http.StatusOK, export)
	}
}

// ImportErrorResponse carries the structured rejection reason for a
// failed snapshot import.
type ImportErrorResponse struct {
	Error  string                    `json:"error"`
	Detail *snapshot.ValidationError `json:"detail"`
}

// HandleImport replaces a user's state from an uploaded export file
func HandleImport(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := svc.Import(r.Context(), userID, body); err != nil {
			log.Warn(ErrMsgImportFailed, "error", err, "user_id", userID)
			var verr *snapshot.ValidationError
			if errors.As(err, &verr) {
				respondJSON(w, http.StatusBadRequest, ImportErrorResponse{
					Error:  ErrMsgInvalidSnapshotError,
					Detail: verr,
				})
				return
			}
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Snapshot imported"})
	}
}

// HandleSyncNow forces an immediate cloud sync for a user
func HandleSyncNow(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		if err := svc.Sync(r.Context(), userID); err != nil {
			log.Error(ErrMsgSaveStateFailed, "error", err, "user_id", userID)
			respondError(w, http.StatusServiceUnavailable, ErrMsgGenericServerError)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "State synced"})
	}
}
