package dto

import "time"

type LoadOutput struct {
	UserID    int64
	LocalOnly bool
	Fetched   int
	Applied   int
	Ignored   int
	Degraded  bool
}

type ToggleInput struct {
	ModuleID string
	LessonID string
}

type ToggleOutput struct {
	ModuleID  string
	LessonID  string
	Completed bool
	// Skipped is set when there is no identity and nothing changed.
	Skipped bool
}

type StatusOutput struct {
	Loaded       bool
	LoadedAt     time.Time
	Degraded     bool
	LoadError    string
	HasIdentity  bool
	UserID       int64
	InFlight     int
	Submitted    int
	Failed       int
	LastSubmitAt time.Time
	LastError    string
}
