package domain

import "time"

// UserProgress is the long-lived player state.
// Invariant: Credits equals the sum of all net credit deltas (awards minus
// spends) and never goes negative.
type UserProgress struct {
	Credits           int       `json:"credits"`
	TotalSessionTime  int       `json:"totalSessionTime"` // seconds
	SessionsCompleted int       `json:"sessionsCompleted"`
	CurrentStreak     int       `json:"currentStreak"`
	LastSessionDate   string    `json:"lastSessionDate,omitempty"` // local calendar date, YYYY-MM-DD
	OwnedComponents   []string  `json:"ownedComponents"`
	SessionHistory    []Session `json:"sessionHistory"`
}

// Owns reports whether the item id appears in the owned multiset.
func (p *UserProgress) Owns(itemID string) bool {
	for _, id := range p.OwnedComponents {
		if id == itemID {
			return true
		}
	}
	return false
}

// LocalDate formats t as a local calendar date the way LastSessionDate and
// the streak computation expect it.
func LocalDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// GoalAdvice is auxiliary advisor output attached to the user. Fully
// replaceable; recommended ids must exist in the catalog.
type GoalAdvice struct {
	Goal             string    `json:"goal"`
	Summary          string    `json:"summary"`
	RecommendedItems []string  `json:"recommendedItems,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
