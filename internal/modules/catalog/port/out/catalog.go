package out

import (
	"context"

	"finpro/internal/modules/catalog/domain"
)

// Source produces the initial catalog once at startup.
type Source interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

type VideoLauncher interface {
	Open(ctx context.Context, videoURL string) error
}
