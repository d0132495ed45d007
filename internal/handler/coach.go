package handler

import (
	"net/http"

	"github.com/stackgarden/stackgarden/internal/agent"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/session"
)

// CoachMessageRequest asks the persona layer for a message
type CoachMessageRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	Mode   string `json:"mode" validate:"required,max=32"`
}

// CoachMessageResponse carries the persona message and how it was produced
type CoachMessageResponse struct {
	Message   agent.Response `json:"message"`
	Outcome   string         `json:"outcome"`
	Delivered bool           `json:"delivered"`
}

var knownModes = map[agent.Mode]bool{
	agent.ModeSessionComplete:    true,
	agent.ModeSessionAbandoned:   true,
	agent.ModeFinalMinute:        true,
	agent.ModeWelcomeBack:        true,
	agent.ModeEncouragement:      true,
	agent.ModeArchitectureAdvice: true,
}

// HandleCoachMessage requests a persona message for an explicit mode
func HandleCoachMessage(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CoachMessageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Coach message"); err != nil {
			return
		}

		mode := agent.Mode(req.Mode)
		if !knownModes[mode] {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		resp, outcome := svc.CoachMessage(r.Context(), req.UserID, mode)
		if outcome == agent.OutcomeSuppressed {
			log.Debug(ErrMsgCoachMessageFailed, "user_id", req.UserID, "mode", req.Mode)
			respondJSON(w, http.StatusOK, CoachMessageResponse{Outcome: string(outcome)})
			return
		}

		respondJSON(w, http.StatusOK, CoachMessageResponse{
			Message:   resp,
			Outcome:   string(outcome),
			Delivered: true,
		})
	}
}

// WelcomeBackResponse carries the proactive greeting when the gate fires
type WelcomeBackResponse struct {
	Fired   bool            `json:"fired"`
	Message *agent.Response `json:"message,omitempty"`
}

// HandleWelcomeBack fires the once-per-launch welcome greeting
func HandleWelcomeBack(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SessionActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Welcome back"); err != nil {
			return
		}

		resp, fired := svc.WelcomeBack(r.Context(), req.UserID)
		out := WelcomeBackResponse{Fired: fired}
		if fired {
			out.Message = &resp
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GoalAdviceRequest stores persona guidance toward a stated goal
type GoalAdviceRequest struct {
	UserID           string   `json:"userId" validate:"required,max=64"`
	Goal             string   `json:"goal" validate:"required,max=256"`
	Summary          string   `json:"summary" validate:"required,max=1024"`
	RecommendedItems []string `json:"recommendedItems" validate:"max=16,dive,max=64"`
}

// HandleSetGoalAdvice stores goal advice for later reference
func HandleSetGoalAdvice(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoalAdviceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set goal advice"); err != nil {
			return
		}

		advice, err := svc.SetGoalAdvice(r.Context(), req.UserID, domain.GoalAdvice{
			Goal:             req.Goal,
			Summary:          req.Summary,
			RecommendedItems: req.RecommendedItems,
		})
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, advice)
	}
}

// GoalAdviceResponse wraps stored advice; Present is false when none exists
type GoalAdviceResponse struct {
	Present bool               `json:"present"`
	Advice  *domain.GoalAdvice `json:"advice,omitempty"`
}

// HandleGetGoalAdvice returns the stored goal advice, if any
func HandleGetGoalAdvice(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		advice, present := svc.GoalAdvice(r.Context(), userID)
		resp := GoalAdviceResponse{Present: present}
		if present {
			resp.Advice = &advice
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleClearGoalAdvice discards stored goal advice
func HandleClearGoalAdvice(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SessionActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Clear goal advice"); err != nil {
			return
		}

		svc.ClearGoalAdvice(r.Context(), req.UserID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Goal advice cleared"})
	}
}
