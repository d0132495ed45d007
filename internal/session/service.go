// Package session owns the per-user simulation state: progress, canvas,
// the single live timer slot and goal advice. Every mutation happens under
// the user's lock, so the session-end transition (history append, credit
// award, streak update, timer reset) is observed as one step.
package session

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/stackgarden/stackgarden/internal/agent"
	"github.com/stackgarden/stackgarden/internal/canvas"
	"github.com/stackgarden/stackgarden/internal/catalog"
	"github.com/stackgarden/stackgarden/internal/credit"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/history"
	"github.com/stackgarden/stackgarden/internal/snapshot"
	"github.com/stackgarden/stackgarden/internal/store"
	"github.com/stackgarden/stackgarden/internal/timer"
)

// Outcome is the observable result of a session ending.
type Outcome struct {
	Session   domain.Session   `json:"session"`
	Breakdown credit.Breakdown `json:"breakdown"`
	Streak    int              `json:"streak"`
	Credits   int              `json:"credits"`
}

// ShopEntry pairs a catalog item with its purchase classification for the
// requesting user.
type ShopEntry struct {
	Item  domain.CatalogItem   `json:"item"`
	State domain.PurchaseState `json:"state"`
}

// Service defines the interface for session and progress operations
type Service interface {
	// Timer lifecycle
	StartSession(ctx context.Context, userID string, durationSeconds int) (domain.TimerState, error)
	PauseSession(ctx context.Context, userID string) (domain.TimerState, error)
	ResumeSession(ctx context.Context, userID string) (domain.TimerState, error)
	TimerState(ctx context.Context, userID string) (domain.TimerState, bool)
	CompleteSession(ctx context.Context, userID string) (Outcome, error)
	AbandonSession(ctx context.Context, userID string) (Outcome, error)
	TickAll(ctx context.Context)

	// Progress and history
	Progress(ctx context.Context, userID string) domain.UserProgress
	History(ctx context.Context, userID string) (history.Buckets, history.Statistics)

	// Shop
	Shop(ctx context.Context, userID string) []ShopEntry
	Purchase(ctx context.Context, userID, itemID string) (catalog.Result, error)

	// Canvas
	Architecture(ctx context.Context, userID string) ([]domain.PlacedComponent, []domain.Connection)
	PlaceComponent(ctx context.Context, userID, itemType string, pos domain.Position) (domain.PlacedComponent, error)
	QuickPlaceComponent(ctx context.Context, userID, itemType string) (domain.PlacedComponent, error)
	MoveComponent(ctx context.Context, userID, instanceID string, pos domain.Position) (domain.PlacedComponent, error)
	RemoveComponent(ctx context.Context, userID, instanceID string) error
	UpgradeComponent(ctx context.Context, userID, instanceID string) (domain.PlacedComponent, int, error)
	Connect(ctx context.Context, userID, fromID, toID, connType string) (domain.Connection, error)
	Disconnect(ctx context.Context, userID, fromID, toID string) error
	ConnectionGuidance(fromCategory, toCategory domain.Category) (bool, string)

	// Advice
	SetGoalAdvice(ctx context.Context, userID string, advice domain.GoalAdvice) (domain.GoalAdvice, error)
	GoalAdvice(ctx context.Context, userID string) (domain.GoalAdvice, bool)
	ClearGoalAdvice(ctx context.Context, userID string)

	// Persona messages
	CoachMessage(ctx context.Context, userID string, mode agent.Mode) (agent.Response, agent.Outcome)
	WelcomeBack(ctx context.Context, userID string) (agent.Response, bool)

	// Snapshot plumbing
	Export(ctx context.Context, userID string) snapshot.ExportFile
	Import(ctx context.Context, userID string, data []byte) error
	Sync(ctx context.Context, userID string) error
	SyncDirty(ctx context.Context)
	LoadFromStore(ctx context.Context, userID string) error

	Shutdown(ctx context.Context) error
}

type userState struct {
	mu       sync.Mutex
	progress domain.UserProgress
	arch     canvas.Architecture
	timer    *timer.Controller
	advice   *domain.GoalAdvice
	dirty    bool
}

type service struct {
	mu    sync.Mutex
	users map[string]*userState

	catalog    *catalog.Catalog
	stateStore store.StateStore
	bus        event.Bus
	clock      clockwork.Clock
	dispatcher *agent.Dispatcher
	welcome    *agent.WelcomeBackGate
	wg         sync.WaitGroup
}

// NewService creates a new session service
func NewService(cat *catalog.Catalog, st store.StateStore, bus event.Bus, dispatcher *agent.Dispatcher, clock clockwork.Clock) Service {
	return &service{
		users:      make(map[string]*userState),
		catalog:    cat,
		stateStore: st,
		bus:        bus,
		clock:      clock,
		dispatcher: dispatcher,
		welcome:    agent.NewWelcomeBackGate(clock),
	}
}

// user returns the state for userID, creating an empty one on first touch.
func (s *service) user(userID string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		u = &userState{
			progress: domain.UserProgress{
				OwnedComponents: []string{},
				SessionHistory:  []domain.Session{},
			},
			timer: timer.NewController(s.clock),
		}
		s.users[userID] = u
	}
	return u
}

// resolver adapts the catalog for connection validation.
func (s *service) resolver() canvas.CategoryResolver {
	return func(itemType string) (domain.Category, bool) {
		return s.catalog.Category(itemType)
	}
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	// Bus handler failures never surface to the caller.
	_ = s.bus.Publish(ctx, e)
}

// Shutdown waits for in-flight background syncs.
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
