package domain

import "time"

// TimerState is the live countdown. Exactly one TimerState is live per user
// at a time; the session controller owns the single optional slot.
type TimerState struct {
	IsActive        bool          `json:"isActive"`
	IsPaused        bool          `json:"isPaused"`
	TimeRemaining   int           `json:"timeRemaining"` // seconds
	TotalDuration   int           `json:"totalDuration"` // seconds
	StartTime       time.Time     `json:"startTime"`
	PauseCount      int           `json:"pauseCount"`
	PausedAt        *time.Time    `json:"pausedAt,omitempty"`
	TotalPausedTime time.Duration `json:"totalPausedTime"` // accumulated pause time
}
