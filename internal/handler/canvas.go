package handler

import (
	"net/http"

	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/session"
)

// PlaceComponentRequest is the body for placing an owned item on the canvas
type PlaceComponentRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	ItemType string `json:"itemType" validate:"required,max=64"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// QuickPlaceRequest places an item at the first free cell
type QuickPlaceRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	ItemType string `json:"itemType" validate:"required,max=64"`
}

// MoveComponentRequest is the body for moving a placed component
type MoveComponentRequest struct {
	UserID     string `json:"userId" validate:"required,max=64"`
	InstanceID string `json:"instanceId" validate:"required,max=64"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

// RemoveComponentRequest is the body for removing a placed component
type RemoveComponentRequest struct {
	UserID     string `json:"userId" validate:"required,max=64"`
	InstanceID string `json:"instanceId" validate:"required,max=64"`
}

// ConnectionRequest is the body for creating or removing a connection
type ConnectionRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	From   string `json:"from" validate:"required,max=64"`
	To     string `json:"to" validate:"required,max=64"`
	Type   string `json:"type,omitempty" validate:"max=32"`
}

// ArchitectureResponse is the full canvas for a user
type ArchitectureResponse struct {
	Components  []domain.PlacedComponent `json:"placedComponents"`
	Connections []domain.Connection      `json:"connections"`
}

// HandleGetArchitecture returns the user's canvas
func HandleGetArchitecture(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		components, connections := svc.Architecture(r.Context(), userID)
		respondJSON(w, http.StatusOK, ArchitectureResponse{
			Components:  components,
			Connections: connections,
		})
	}
}

// HandlePlaceComponent places an owned item at an explicit position
func HandlePlaceComponent(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PlaceComponentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Place component"); err != nil {
			return
		}

		comp, err := svc.PlaceComponent(r.Context(), req.UserID, req.ItemType, domain.Position{X: req.X, Y: req.Y})
		if err != nil {
			log.Error(ErrMsgPlaceFailed, "error", err, "user_id", req.UserID, "item_type", req.ItemType)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, comp)
	}
}

// HandleQuickPlaceComponent places an owned item at the first free cell
func HandleQuickPlaceComponent(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req QuickPlaceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Quick place component"); err != nil {
			return
		}

		comp, err := svc.QuickPlaceComponent(r.Context(), req.UserID, req.ItemType)
		if err != nil {
			log.Error(ErrMsgPlaceFailed, "error", err, "user_id", req.UserID, "item_type", req.ItemType)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, comp)
	}
}

// HandleMoveComponent moves a placed component to a new position
func HandleMoveComponent(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveComponentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Move component"); err != nil {
			return
		}

		comp, err := svc.MoveComponent(r.Context(), req.UserID, req.InstanceID, domain.Position{X: req.X, Y: req.Y})
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, comp)
	}
}

// HandleRemoveComponent removes a placed component and its connections
func HandleRemoveComponent(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveComponentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove component"); err != nil {
			return
		}

		if err := svc.RemoveComponent(r.Context(), req.UserID, req.InstanceID); err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Component removed"})
	}
}

// HandleConnect creates a directed connection between two placed components
func HandleConnect(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ConnectionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Connect components"); err != nil {
			return
		}

		conn, err := svc.Connect(r.Context(), req.UserID, req.From, req.To, req.Type)
		if err != nil {
			log.Debug(ErrMsgConnectFailed, "error", err, "user_id", req.UserID, "from", req.From, "to", req.To)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, conn)
	}
}

// HandleDisconnect removes the connection between two placed components
func HandleDisconnect(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConnectionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Disconnect components"); err != nil {
			return
		}

		if err := svc.Disconnect(r.Context(), req.UserID, req.From, req.To); err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Connection removed"})
	}
}

// ConnectionHintResponse reports whether a category pairing is allowed and
// the guidance text clients surface when it is not.
type ConnectionHintResponse struct {
	Valid bool   `json:"valid"`
	Hint  string `json:"hint,omitempty"`
}

// HandleConnectionHint answers whether two categories may be connected
func HandleConnectionHint(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, ok := GetQueryParam(r, w, "from")
		if !ok {
			return
		}
		to, ok := GetQueryParam(r, w, "to")
		if !ok {
			return
		}

		valid, hint := svc.ConnectionGuidance(domain.Category(from), domain.Category(to))
		resp := ConnectionHintResponse{Valid: valid}
		if !valid {
			resp.Hint = hint
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
