package domain

import "time"

// Session is one completed-or-abandoned focus attempt. Immutable once
// created; appended to the user's history in chronological order.
type Session struct {
	ID            string    `json:"id"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Duration      int       `json:"duration"` // active seconds, pauses excluded
	Completed     bool      `json:"completed"`
	PauseCount    int       `json:"pauseCount"`
	CreditsEarned int       `json:"creditsEarned"`
	Bonuses       Bonuses   `json:"bonuses"`
}

// Bonuses is the per-component credit breakdown kept on a session so the
// client can render an award receipt without recomputing formulas.
type Bonuses struct {
	Completion  int `json:"completion"`
	Streak      int `json:"streak"`
	LongSession int `json:"longSession"`
}

// MaxPersistedSessions caps the history carried by snapshots and exports.
// The in-memory history may grow beyond this; anything persisted is
// truncated to the most recent entries by start time.
const MaxPersistedSessions = 100
