package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func earnCredits(t *testing.T, env *testEnv, userID string, amount int) {
	t.Helper()
	for {
		rec := getWithQuery(t, HandleGetProgress(env.svc), "userId="+userID)
		var progress map[string]interface{}
		decodeBody(t, rec, &progress)
		if int(progress["credits"].(float64)) >= amount {
			return
		}
		rec = postJSON(t, HandleStartSession(env.svc), StartSessionRequest{UserID: userID, Duration: 900})
		require.Equal(t, http.StatusOK, rec.Code)
		env.clock.Advance(900 * time.Second)
		rec = postJSON(t, HandleCompleteSession(env.svc), SessionActionRequest{UserID: userID})
		require.Equal(t, http.StatusOK, rec.Code)
		env.clock.Advance(time.Minute)
	}
}

func TestHandlePurchase(t *testing.T) {
	t.Run("successful purchase", func(t *testing.T) {
		env := newTestEnv(t)
		earnCredits(t, env, "u1", 50)

		rec := postJSON(t, HandlePurchase(env.svc), PurchaseRequest{UserID: "u1", ItemID: "static_site"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PurchaseResponse
		decodeBody(t, rec, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, 50, resp.Spent)
	})

	t.Run("denial is a normal response", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandlePurchase(env.svc), PurchaseRequest{UserID: "u1", ItemID: "static_site"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PurchaseResponse
		decodeBody(t, rec, &resp)
		assert.False(t, resp.Success)
		assert.Equal(t, "insufficient_credits", resp.Reason)
		assert.Equal(t, 50, resp.Shortage)
	})

	t.Run("unknown item is 404", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandlePurchase(env.svc), PurchaseRequest{UserID: "u1", ItemID: "quantum_db"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleGetShop(t *testing.T) {
	env := newTestEnv(t)

	rec := getWithQuery(t, HandleGetShop(env.svc), "userId=u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
			State string `json:"state"`
		} `json:"items"`
	}
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Items, 2)
}

func TestHandlePlaceComponentRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)

	rec := postJSON(t, HandleQuickPlaceComponent(env.svc), QuickPlaceRequest{UserID: "u1", ItemType: "web_server"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	decodeBody(t, rec, &errResp)
	assert.Equal(t, ErrMsgNotOwnedError, errResp.Error)
}

func TestHandleConnectionHint(t *testing.T) {
	env := newTestEnv(t)

	rec := getWithQuery(t, HandleConnectionHint(env.svc), "from=compute&to=database")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConnectionHintResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Valid)

	rec = getWithQuery(t, HandleConnectionHint(env.svc), "from=observability&to=compute")
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Hint)
}
