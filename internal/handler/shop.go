package handler

import (
	"net/http"

	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/session"
)

// PurchaseRequest is the body for buying a catalog item
type PurchaseRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	ItemID string `json:"itemId" validate:"required,max=64"`
}

// PurchaseResponse reports the validator verdict alongside the wallet
type PurchaseResponse struct {
	Success          bool     `json:"success"`
	Reason           string   `json:"reason,omitempty"`
	MissingPrereqs   []string `json:"missingPrereqs,omitempty"`
	Shortage         int      `json:"shortage,omitempty"`
	Spent            int      `json:"spent,omitempty"`
	RemainingCredits int      `json:"remainingCredits"`
}

// UpgradeComponentRequest is the body for raising a placed component's tier
type UpgradeComponentRequest struct {
	UserID     string `json:"userId" validate:"required,max=64"`
	InstanceID string `json:"instanceId" validate:"required,max=64"`
}

// HandleGetShop returns every catalog item with its purchase classification
func HandleGetShop(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "userId")
		if !ok {
			return
		}

		entries := svc.Shop(r.Context(), userID)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"items": entries,
		})
	}
}

// HandlePurchase validates and executes a shop purchase. A denial is a
// normal 200 response carrying the reason; only unknown items and internal
// failures produce error statuses.
func HandlePurchase(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
			return
		}

		result, err := svc.Purchase(r.Context(), req.UserID, req.ItemID)
		if err != nil {
			log.Error(ErrMsgPurchaseFailed, "error", err, "user_id", req.UserID, "item_id", req.ItemID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, PurchaseResponse{
			Success:          result.Check.Allowed,
			Reason:           string(result.Check.Reason),
			MissingPrereqs:   result.Check.MissingPrereqs,
			Shortage:         result.Check.Shortage,
			Spent:            result.Spent,
			RemainingCredits: result.Credits,
		})
	}
}

// UpgradeComponentResponse reports the upgraded component and cost
type UpgradeComponentResponse struct {
	Component interface{} `json:"component"`
	Cost      int         `json:"cost"`
}

// HandleUpgradeComponent raises a placed component to its next tier
func HandleUpgradeComponent(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UpgradeComponentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Upgrade component"); err != nil {
			return
		}

		comp, cost, err := svc.UpgradeComponent(r.Context(), req.UserID, req.InstanceID)
		if err != nil {
			log.Error(ErrMsgUpgradeFailed, "error", err, "user_id", req.UserID, "instance_id", req.InstanceID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, UpgradeComponentResponse{Component: comp, Cost: cost})
	}
}
