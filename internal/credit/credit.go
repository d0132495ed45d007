// Package credit holds the award formulas. Every function is pure,
// deterministic and integer-valued; floor rounding is applied at each stage
// rather than accumulating floating point across bonuses.
package credit

import (
	"github.com/stackgarden/stackgarden/internal/domain"
)

const (
	// BlockSeconds is the size of one earning block: 15 minutes.
	BlockSeconds = 900
	// CreditsPerBlock is the award for each full block.
	CreditsPerBlock = 10

	// CompletionBonusRate applies when a session finishes with zero pauses.
	CompletionBonusRate = 0.2
	// StreakBonusPerDay is the per-day streak multiplier.
	StreakBonusPerDay = 0.05
	// StreakBonusCap is the highest streak multiplier, reached at 10 days.
	StreakBonusCap = 0.5
	// LongSessionSeconds is the threshold for the long-session bonus.
	LongSessionSeconds = 3600
	// LongSessionBonusRate applies to sessions at or above the threshold.
	LongSessionBonusRate = 0.1
	// PartialRate is the abandoned-session payout relative to base.
	PartialRate = 0.5
)

// Breakdown reports the award total alongside each component so the client
// can render a receipt.
type Breakdown struct {
	Base        int `json:"base"`
	Completion  int `json:"completion"`
	Streak      int `json:"streak"`
	LongSession int `json:"longSession"`
	Total       int `json:"total"`
}

// BaseCredits awards CreditsPerBlock for every full block of focused time.
// Partial blocks earn nothing.
func BaseCredits(durationSeconds int) int {
	if durationSeconds <= 0 {
		return 0
	}
	return (durationSeconds / BlockSeconds) * CreditsPerBlock
}

// CompletionBonus rewards an uninterrupted run: 20% of base, zero pauses only.
func CompletionBonus(base, pauseCount int) int {
	if pauseCount != 0 {
		return 0
	}
	return int(float64(base) * CompletionBonusRate)
}

// StreakBonus scales with consecutive completed days, capped at 50% of base.
func StreakBonus(base, streak int) int {
	if streak <= 0 {
		return 0
	}
	rate := float64(streak) * StreakBonusPerDay
	if rate > StreakBonusCap {
		rate = StreakBonusCap
	}
	return int(float64(base) * rate)
}

// LongSessionBonus adds 10% of base for sessions of an hour or longer.
func LongSessionBonus(base, durationSeconds int) int {
	if durationSeconds < LongSessionSeconds {
		return 0
	}
	return int(float64(base) * LongSessionBonusRate)
}

// PartialCredits is the abandoned-session payout: half the base earned over
// the actually-elapsed time, never the planned duration.
func PartialCredits(elapsedSeconds int) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	return int(float64(BaseCredits(elapsedSeconds)) * PartialRate)
}

// TotalCredits computes the full award breakdown for a session. Abandoned
// sessions earn only the partial payout with every bonus field zero.
func TotalCredits(session domain.Session, streak int) Breakdown {
	if !session.Completed {
		partial := PartialCredits(session.Duration)
		return Breakdown{Base: partial, Total: partial}
	}

	base := BaseCredits(session.Duration)
	completion := CompletionBonus(base, session.PauseCount)
	streakBonus := StreakBonus(base, streak)
	long := LongSessionBonus(base, session.Duration)

	return Breakdown{
		Base:        base,
		Completion:  completion,
		Streak:      streakBonus,
		LongSession: long,
		Total:       base + completion + streakBonus + long,
	}
}
