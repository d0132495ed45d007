package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/session"
)

func TestHandleStartSession(t *testing.T) {
	t.Run("starts a session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandleStartSession(env.svc), StartSessionRequest{
			UserID:   "u1",
			Duration: 1500,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var state domain.TimerState
		decodeBody(t, rec, &state)
		assert.True(t, state.IsActive)
		assert.Equal(t, 1500, state.TimeRemaining)
	})

	t.Run("rejects a second session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandleStartSession(env.svc), StartSessionRequest{UserID: "u1", Duration: 1500})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = postJSON(t, HandleStartSession(env.svc), StartSessionRequest{UserID: "u1", Duration: 600})
		assert.Equal(t, http.StatusConflict, rec.Code)

		var errResp ErrorResponse
		decodeBody(t, rec, &errResp)
		assert.Equal(t, ErrMsgSessionActiveError, errResp.Error)
	})

	t.Run("rejects missing duration", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandleStartSession(env.svc), map[string]interface{}{"userId": "u1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp ValidationErrorResponse
		decodeBody(t, rec, &errResp)
		assert.Equal(t, ErrMsgInvalidRequestSummary, errResp.Error)
		assert.Contains(t, errResp.Fields, "duration")
	})
}

func TestHandleCompleteSession(t *testing.T) {
	t.Run("awards credits on completion", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandleStartSession(env.svc), StartSessionRequest{UserID: "u1", Duration: 1500})
		require.Equal(t, http.StatusOK, rec.Code)
		env.clock.Advance(1500 * time.Second)

		rec = postJSON(t, HandleCompleteSession(env.svc), SessionActionRequest{UserID: "u1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var outcome session.Outcome
		decodeBody(t, rec, &outcome)
		assert.True(t, outcome.Session.Completed)
		assert.Greater(t, outcome.Credits, 0)
	})

	t.Run("conflict without a session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := postJSON(t, HandleCompleteSession(env.svc), SessionActionRequest{UserID: "u1"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandleGetTimer(t *testing.T) {
	env := newTestEnv(t)

	rec := getWithQuery(t, HandleGetTimer(env.svc), "userId=u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TimerStateResponse
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Active)

	postJSON(t, HandleStartSession(env.svc), StartSessionRequest{UserID: "u1", Duration: 300})
	rec = getWithQuery(t, HandleGetTimer(env.svc), "userId=u1")
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Active)

	rec = getWithQuery(t, HandleGetTimer(env.svc), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
