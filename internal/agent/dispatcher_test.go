package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient scripts a sequence of results; extra calls repeat the last one.
type stubClient struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
}

type stubResult struct {
	resp Response
	err  error
}

func (c *stubClient) Generate(_ context.Context, _ Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	if i >= len(c.results) {
		i = len(c.results) - 1
	}
	c.calls++
	return c.results[i].resp, c.results[i].err
}

func (c *stubClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// blockingClient holds the call open until released.
type blockingClient struct {
	started chan struct{}
	release chan struct{}
}

func (c *blockingClient) Generate(_ context.Context, _ Request) (Response, error) {
	close(c.started)
	<-c.release
	return Response{Message: "done"}, nil
}

func newDispatcher(client Client) *Dispatcher {
	return NewDispatcher(client, NewRateLimiter(100, clockwork.NewFakeClock()), DefaultCallTimeout)
}

func TestDispatchSuccessNormalizes(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{resp: Response{Message: "nice work"}},
	}}
	d := newDispatcher(client)

	resp, outcome := d.Dispatch(context.Background(), Request{Mode: ModeSessionComplete})
	assert.Equal(t, OutcomeSuccess, outcome)
	assert.Equal(t, "nice work", resp.Message)
	// Missing fields come from the mode defaults.
	assert.Equal(t, "celebratory", resp.Tone)
	assert.Equal(t, 1500, resp.SuggestedDuration)
}

func TestDispatchRetriesOnceOnTimeout(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: context.DeadlineExceeded},
		{resp: Response{Message: "second try"}},
	}}
	d := newDispatcher(client)

	resp, outcome := d.Dispatch(context.Background(), Request{Mode: ModeEncouragement})
	assert.Equal(t, OutcomeSuccess, outcome)
	assert.Equal(t, "second try", resp.Message)
	assert.Equal(t, 2, client.callCount())
}

func TestDispatchDoubleTimeoutFallsBack(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: context.DeadlineExceeded},
		{err: context.DeadlineExceeded},
	}}
	d := newDispatcher(client)

	resp, outcome := d.Dispatch(context.Background(), Request{Mode: ModeSessionAbandoned})
	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, Fallback(ModeSessionAbandoned), resp)
	// One retry only.
	assert.Equal(t, 2, client.callCount())
}

func TestDispatchNoRetryOnOtherErrors(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{err: errors.New("api quota exceeded")},
	}}
	d := newDispatcher(client)

	resp, outcome := d.Dispatch(context.Background(), Request{Mode: ModeWelcomeBack})
	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, Fallback(ModeWelcomeBack), resp)
	assert.Equal(t, 1, client.callCount())
}

func TestDispatchRateLimitedFallsBackWithoutCalling(t *testing.T) {
	client := &stubClient{results: []stubResult{
		{resp: Response{Message: "should not be used"}},
	}}
	limiter := NewRateLimiter(1, clockwork.NewFakeClock())
	require.True(t, limiter.Consume())
	d := NewDispatcher(client, limiter, DefaultCallTimeout)

	resp, outcome := d.Dispatch(context.Background(), Request{Mode: ModeEncouragement})
	assert.Equal(t, OutcomeRateLimited, outcome)
	assert.Equal(t, Fallback(ModeEncouragement), resp)
	assert.Equal(t, 0, client.callCount())
}

func TestDispatchInFlightGuardPerMode(t *testing.T) {
	blocking := &blockingClient{started: make(chan struct{}), release: make(chan struct{})}
	d := newDispatcher(blocking)

	done := make(chan Outcome, 1)
	go func() {
		_, outcome := d.Dispatch(context.Background(), Request{Mode: ModeSessionComplete})
		done <- outcome
	}()
	<-blocking.started

	// Same mode is refused while the first call is open.
	_, outcome := d.Dispatch(context.Background(), Request{Mode: ModeSessionComplete})
	assert.Equal(t, OutcomeSuppressed, outcome)

	close(blocking.release)
	assert.Equal(t, OutcomeSuccess, <-done)

	// Guard clears once the call resolves.
	blocking2 := &blockingClient{started: make(chan struct{}), release: make(chan struct{})}
	close(blocking2.release)
	d2 := newDispatcher(blocking2)
	_, outcome = d2.Dispatch(context.Background(), Request{Mode: ModeSessionComplete})
	assert.Equal(t, OutcomeSuccess, outcome)
}

func TestScriptedClientAlwaysAnswers(t *testing.T) {
	client := NewScriptedClient()
	for _, mode := range []Mode{
		ModeSessionComplete, ModeSessionAbandoned, ModeFinalMinute,
		ModeWelcomeBack, ModeEncouragement, ModeArchitectureAdvice,
	} {
		resp, err := client.Generate(context.Background(), Request{Mode: mode})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Message, "mode %s", mode)
	}
}

func TestScriptedAdvisorSuggestsDatabase(t *testing.T) {
	client := NewScriptedClient()
	resp, err := client.Generate(context.Background(), Request{
		Mode: ModeArchitectureAdvice,
		Architecture: &ArchitectureSummary{
			Credits:         200,
			OwnedComponents: []string{"web_server"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "sql_db", resp.SuggestedItem)
}

func TestParseResponseToleratesPlainText(t *testing.T) {
	resp := parseResponse("Just keep going!")
	assert.Equal(t, "Just keep going!", resp.Message)

	resp = parseResponse("```json\n{\"message\":\"hi\",\"tone\":\"warm\"}\n```")
	assert.Equal(t, "hi", resp.Message)
	assert.Equal(t, "warm", resp.Tone)
}

func TestNormalizeNeverPartial(t *testing.T) {
	resp := Normalize(Response{}, ModeArchitectureAdvice)
	def := Fallback(ModeArchitectureAdvice)
	assert.Equal(t, def, resp)

	resp = Normalize(Response{Message: "custom"}, ModeSessionComplete)
	assert.Equal(t, "custom", resp.Message)
	assert.NotEmpty(t, resp.Tone)
}

func TestPersonaRouting(t *testing.T) {
	assert.Equal(t, PersonaAdvisor, PersonaFor(ModeArchitectureAdvice))
	assert.Equal(t, PersonaCoach, PersonaFor(ModeSessionComplete))
	assert.Equal(t, PersonaCoach, PersonaFor(ModeWelcomeBack))
}
