package handler

import (
	"net/http"

	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/session"
)

// StartSessionRequest is the body for starting a focus session
type StartSessionRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

// SessionActionRequest is the body for pause/resume/complete/abandon
type SessionActionRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
}

// HandleStartSession starts a countdown session for the user
func HandleStartSession(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StartSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start session"); err != nil {
			return
		}

		state, err := svc.StartSession(r.Context(), req.UserID, req.Duration)
		if err != nil {
			log.Error(ErrMsgStartSessionFailed, "error", err, "user_id", req.UserID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// HandlePauseSession pauses the running session
func HandlePauseSession(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SessionActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pause session"); err != nil {
			return
		}

		state, err := svc.PauseSession(r.Context(), req.UserID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// HandleResumeSession resumes a paused session
func HandleResumeSession(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SessionActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Resume session"); err != nil {
			return
		}

		state, err := svc.ResumeSession(r.Context(), req.UserID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// HandleCompleteSession ends the session with full credit award
func HandleCompleteSession(svc session.Service) http.HandlerFunc {
	return endSessionHandler(svc, true)
}

// HandleAbandonSession ends the session early for partial credit
func HandleAbandonSession(svc session.Service) http.HandlerFunc {
	return endSessionHandler(svc, false)
}

func endSessionHandler(svc session.Service, complete bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SessionActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "End session"); err != nil {
			return
		}

		var (
			outcome session.Outcome
			err     error
		)
		if complete {
			outcome, err = svc.CompleteSession(r.Context(), req.UserID)
		} else {
			outcome, err = svc.AbandonSession(r.Context(), req.UserID)
		}
		if err != nil {
			log.Error(ErrMsgEndSessionFailed, "error", err, "user_id", req.UserID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, outcome)
	}
}

// TimerStateResponse wraps the timer state with an active flag so clients
// can distinguish an idle slot from a paused one.
type TimerStateResponse struct {
	Active bool        `json:"active"`
	State  interface{} `json:"state,omitempty"`
}

// HandleGetTimer reports the current timer state for the user
func HandleGetTimer(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		state, active := svc.TimerState(r.Context(), userID)
		resp := TimerStateResponse{Active: active}
		if active {
			resp.State = state
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
