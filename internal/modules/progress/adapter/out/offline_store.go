package out

import (
	"context"
	"errors"

	"finpro/internal/modules/progress/domain"
)

var ErrNoEndpoint = errors.New("progress endpoint is not configured")

// OfflineStore stands in for the remote store when no endpoint is set. Every
// call fails, so a load is reported as degraded and submissions as failed.
type OfflineStore struct{}

func (OfflineStore) Fetch(context.Context, int64) ([]domain.Record, error) {
	return nil, ErrNoEndpoint
}

func (OfflineStore) Submit(context.Context, domain.Submission) error {
	return ErrNoEndpoint
}
