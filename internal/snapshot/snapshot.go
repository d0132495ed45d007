// Package snapshot builds and validates the serializable state shared by
// remote sync and file backup. The file format wraps the same shape with a
// version tag and export metadata; import validation is strict for files and
// looser for the cloud payload, which is the app's own last-known-good write.
package snapshot

import (
	"sort"
	"time"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// CurrentVersion is the only export file version accepted on import.
// Exact-match policy: there are no backward compatibility shims.
const CurrentVersion = "1.0.0"

// CloudState is the remote-sync payload.
type CloudState struct {
	Credits          int                      `json:"credits"`
	CurrentStreak    int                      `json:"currentStreak"`
	LastSessionDate  string                   `json:"lastSessionDate,omitempty"`
	OwnedComponents  []string                 `json:"ownedComponents"`
	PlacedComponents []domain.PlacedComponent `json:"placedComponents"`
	Connections      []domain.Connection      `json:"connections"`
	SessionHistory   []domain.Session         `json:"sessionHistory"`
}

// ExportProgress is the userProgress block of the export file. It carries
// the aggregate fields the cloud payload omits.
type ExportProgress struct {
	Credits           int              `json:"credits"`
	TotalSessionTime  int              `json:"totalSessionTime"`
	SessionsCompleted int              `json:"sessionsCompleted"`
	CurrentStreak     int              `json:"currentStreak"`
	LastSessionDate   string           `json:"lastSessionDate,omitempty"`
	OwnedComponents   []string         `json:"ownedComponents"`
	SessionHistory    []domain.Session `json:"sessionHistory"`
}

// ExportArchitecture is the architecture block of the export file.
type ExportArchitecture struct {
	PlacedComponents []domain.PlacedComponent `json:"placedComponents"`
	Connections      []domain.Connection      `json:"connections"`
}

// ExportFile is the versioned file backup format.
type ExportFile struct {
	Version      string             `json:"version"`
	ExportDate   string             `json:"exportDate"` // ISO-8601
	UserProgress ExportProgress     `json:"userProgress"`
	Architecture ExportArchitecture `json:"architecture"`
}

// Restored is normalized state produced by a successful import.
type Restored struct {
	Progress         domain.UserProgress
	PlacedComponents []domain.PlacedComponent
	Connections      []domain.Connection
}

// BuildCloudState extracts the sync payload. Slices are copied and the
// history is truncated to the most recent entries.
func BuildCloudState(progress domain.UserProgress, placed []domain.PlacedComponent, connections []domain.Connection) CloudState {
	return CloudState{
		Credits:          progress.Credits,
		CurrentStreak:    progress.CurrentStreak,
		LastSessionDate:  progress.LastSessionDate,
		OwnedComponents:  copyStrings(progress.OwnedComponents),
		PlacedComponents: copyComponents(placed),
		Connections:      copyConnections(connections),
		SessionHistory:   TruncateHistory(progress.SessionHistory),
	}
}

// BuildExport wraps the snapshot with the version tag, export timestamp and
// the aggregate progress fields.
func BuildExport(progress domain.UserProgress, placed []domain.PlacedComponent, connections []domain.Connection, now time.Time) ExportFile {
	return ExportFile{
		Version:    CurrentVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		UserProgress: ExportProgress{
			Credits:           progress.Credits,
			TotalSessionTime:  progress.TotalSessionTime,
			SessionsCompleted: progress.SessionsCompleted,
			CurrentStreak:     progress.CurrentStreak,
			LastSessionDate:   progress.LastSessionDate,
			OwnedComponents:   copyStrings(progress.OwnedComponents),
			SessionHistory:    TruncateHistory(progress.SessionHistory),
		},
		Architecture: ExportArchitecture{
			PlacedComponents: copyComponents(placed),
			Connections:      copyConnections(connections),
		},
	}
}

// TruncateHistory keeps the most recent MaxPersistedSessions entries by
// start time, preserving chronological order.
func TruncateHistory(sessions []domain.Session) []domain.Session {
	out := make([]domain.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	if len(out) > domain.MaxPersistedSessions {
		out = out[len(out)-domain.MaxPersistedSessions:]
	}
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyComponents(in []domain.PlacedComponent) []domain.PlacedComponent {
	out := make([]domain.PlacedComponent, len(in))
	copy(out, in)
	return out
}

func copyConnections(in []domain.Connection) []domain.Connection {
	out := make([]domain.Connection, len(in))
	copy(out, in)
	return out
}
