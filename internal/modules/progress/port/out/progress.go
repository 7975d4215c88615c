package out

import (
	"context"

	"finpro/internal/modules/progress/domain"
)

type RemoteStore interface {
	Fetch(ctx context.Context, userID int64) ([]domain.Record, error)
	Submit(ctx context.Context, submission domain.Submission) error
}

type IdentityProvider interface {
	// Current returns nil when no user is known.
	Current(ctx context.Context) (*domain.Identity, error)
}

// LessonState is the local completion state the client reconciles into.
type LessonState interface {
	ApplyCompletion(ctx context.Context, lessonID string, completed bool) (bool, error)
	Toggle(ctx context.Context, moduleID, lessonID string) (bool, error)
}
