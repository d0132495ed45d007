// Package agent translates simulation state into the structured inputs the
// two text personas consume, and guarantees a usable message on every path.
// Rate limiting, timeouts, retry policy and fallback defaults all live here
// so no other component has to care whether the model call succeeded.
package agent

import (
	"github.com/stackgarden/stackgarden/internal/domain"
)

// Mode identifies the interaction that triggered a message request. Each
// mode has its own fallback defaults.
type Mode string

const (
	ModeSessionComplete    Mode = "session_complete"
	ModeSessionAbandoned   Mode = "session_abandoned"
	ModeFinalMinute        Mode = "final_minute"
	ModeWelcomeBack        Mode = "welcome_back"
	ModeEncouragement      Mode = "encouragement"
	ModeArchitectureAdvice Mode = "architecture_advice"
)

// Persona selects which of the two text agents serves a mode.
type Persona string

const (
	PersonaCoach   Persona = "coach"
	PersonaAdvisor Persona = "advisor"
)

// PersonaFor maps a mode to the persona that handles it. Architecture
// advice is the advisor's only mode.
func PersonaFor(mode Mode) Persona {
	if mode == ModeArchitectureAdvice {
		return PersonaAdvisor
	}
	return PersonaCoach
}

// SessionSummary is the compact view of recent focus activity handed to the
// coach persona.
type SessionSummary struct {
	RecentSessions    int     `json:"recentSessions"`
	CompletedSessions int     `json:"completedSessions"`
	CompletionRate    float64 `json:"completionRate"`
	CurrentStreak     int     `json:"currentStreak"`
	LastDuration      int     `json:"lastDuration"`
	LastCompleted     bool    `json:"lastCompleted"`
	LastPauseCount    int     `json:"lastPauseCount"`
	CreditsEarned     int     `json:"creditsEarned"`
}

// ArchitectureSummary is the advisor persona's view of the canvas and
// spending power.
type ArchitectureSummary struct {
	Credits         int                      `json:"credits"`
	OwnedComponents []string                 `json:"ownedComponents"`
	Placed          []domain.PlacedComponent `json:"placed"`
	Connections     []domain.Connection      `json:"connections"`
}

// Request is one outbound message request. Exactly one of the summaries is
// populated depending on the persona.
type Request struct {
	Mode         Mode
	Session      *SessionSummary
	Architecture *ArchitectureSummary
}

// Response is a normalized persona reply. After normalization every field
// is non-empty for the fields the mode defines.
type Response struct {
	Message           string `json:"message"`
	Tone              string `json:"tone,omitempty"`
	SuggestedDuration int    `json:"suggestedDuration,omitempty"`
	SuggestedItem     string `json:"suggestedItem,omitempty"`
	Reasoning         string `json:"reasoning,omitempty"`
}
