package snapshot

import (
	"encoding/json"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// ApplyExport validates a backup file and produces normalized state. The
// aggregate counters are re-derived from the session history rather than
// trusted from the payload, which guards against tampered or stale totals.
func ApplyExport(data []byte) (Restored, *ValidationError) {
	if verr := ValidateExport(data); verr != nil {
		return Restored{}, verr
	}

	var file ExportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Restored{}, &ValidationError{Code: ParseError, Message: "file is not valid JSON"}
	}

	return normalize(
		file.UserProgress.Credits,
		file.UserProgress.CurrentStreak,
		file.UserProgress.LastSessionDate,
		file.UserProgress.OwnedComponents,
		file.UserProgress.SessionHistory,
		file.Architecture.PlacedComponents,
		file.Architecture.Connections,
	), nil
}

// RestoreCloudState normalizes an already-typed sync payload, as read back
// from the state store. No structural validation: the store only holds
// payloads this code wrote.
func RestoreCloudState(state CloudState) Restored {
	return normalize(
		state.Credits,
		state.CurrentStreak,
		state.LastSessionDate,
		state.OwnedComponents,
		state.SessionHistory,
		state.PlacedComponents,
		state.Connections,
	)
}

// ApplyCloudState validates a sync payload and produces normalized state.
func ApplyCloudState(data []byte) (Restored, *ValidationError) {
	if verr := ValidateCloudState(data); verr != nil {
		return Restored{}, verr
	}

	var state CloudState
	if err := json.Unmarshal(data, &state); err != nil {
		return Restored{}, &ValidationError{Code: ParseError, Message: "state is not valid JSON"}
	}

	return normalize(
		state.Credits,
		state.CurrentStreak,
		state.LastSessionDate,
		state.OwnedComponents,
		state.SessionHistory,
		state.PlacedComponents,
		state.Connections,
	), nil
}

// normalize fills defaults for every optional field and recomputes the
// session aggregates from the history itself.
func normalize(credits, streak int, lastDate string, owned []string, sessions []domain.Session, placed []domain.PlacedComponent, connections []domain.Connection) Restored {
	if credits < 0 {
		credits = 0
	}
	if streak < 0 {
		streak = 0
	}
	if owned == nil {
		owned = []string{}
	}
	if placed == nil {
		placed = []domain.PlacedComponent{}
	}
	if connections == nil {
		connections = []domain.Connection{}
	}

	history := TruncateHistory(sessions)

	completed := 0
	totalTime := 0
	for _, s := range history {
		totalTime += s.Duration
		if s.Completed {
			completed++
		}
	}

	return Restored{
		Progress: domain.UserProgress{
			Credits:           credits,
			TotalSessionTime:  totalTime,
			SessionsCompleted: completed,
			CurrentStreak:     streak,
			LastSessionDate:   lastDate,
			OwnedComponents:   owned,
			SessionHistory:    history,
		},
		PlacedComponents: placed,
		Connections:      connections,
	}
}
