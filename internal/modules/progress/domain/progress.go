package domain

import "time"

// Identity is the host-supplied user. A nil *Identity means local-only mode.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// Record is one remote completion entry.
type Record struct {
	LessonID    string
	Completed   bool
	CompletedAt *time.Time
}

// Submission is a single upsert of a lesson flag for one user.
type Submission struct {
	RequestID string
	Identity  Identity
	LessonID  string
	Completed bool
}

// LoadResult summarizes one reconciliation pass.
type LoadResult struct {
	UserID   int64
	Fetched  int
	Applied  int
	Ignored  int
	Degraded bool
}

type SyncStats struct {
	Loaded       bool
	LoadedAt     time.Time
	Degraded     bool
	LoadError    string
	InFlight     int
	Submitted    int
	Failed       int
	LastSubmitAt time.Time
	// LastError is the most recent submission failure.
	LastError string
}

// Latest collapses records by lesson id keeping the last occurrence, in
// first-seen order.
func Latest(records []Record) []Record {
	index := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if i, ok := index[r.LessonID]; ok {
			out[i] = r
			continue
		}
		index[r.LessonID] = len(out)
		out = append(out, r)
	}
	return out
}
