package in

import (
	"context"

	"finpro/internal/modules/progress/dto"
)

type Usecase interface {
	// Load reconciles local flags with the remote store for the current
	// identity. Remote failures are reported through Degraded, not err.
	Load(ctx context.Context) (dto.LoadOutput, error)
	Toggle(ctx context.Context, input dto.ToggleInput) (dto.ToggleOutput, error)
	// Loaded is closed once the first Load has finished.
	Loaded() <-chan struct{}
	Status(ctx context.Context) (dto.StatusOutput, error)
	Wait(ctx context.Context) error
}
