package usecase

import (
	"context"
	"fmt"
	"strings"

	"finpro/internal/modules/progress/dto"
	progressin "finpro/internal/modules/progress/port/in"
	progressout "finpro/internal/modules/progress/port/out"
	"finpro/internal/modules/progress/service"
	apperrors "finpro/internal/platform/errors"
)

type Interactor struct {
	svc        *service.SyncService
	identities progressout.IdentityProvider
}

func NewInteractor(svc *service.SyncService, identities progressout.IdentityProvider) progressin.Usecase {
	return &Interactor{svc: svc, identities: identities}
}

func (i *Interactor) Load(ctx context.Context) (out dto.LoadOutput, err error) {
	defer func() { i.svc.MarkLoaded(out.Degraded || err != nil) }()

	identity, err := i.identities.Current(ctx)
	if err != nil {
		return dto.LoadOutput{LocalOnly: true}, fmt.Errorf("resolve identity: %w", err)
	}
	if identity == nil {
		return dto.LoadOutput{LocalOnly: true}, nil
	}
	result := i.svc.LoadProgress(ctx, identity.ID)
	return dto.LoadOutput{
		UserID:   result.UserID,
		Fetched:  result.Fetched,
		Applied:  result.Applied,
		Ignored:  result.Ignored,
		Degraded: result.Degraded,
	}, nil
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (dto.ToggleOutput, error) {
	if strings.TrimSpace(input.ModuleID) == "" || strings.TrimSpace(input.LessonID) == "" {
		return dto.ToggleOutput{}, fmt.Errorf("module id and lesson id are required: %w", apperrors.ErrInvalidInput)
	}
	out := dto.ToggleOutput{ModuleID: input.ModuleID, LessonID: input.LessonID}
	identity, err := i.identities.Current(ctx)
	if err != nil {
		return dto.ToggleOutput{}, fmt.Errorf("resolve identity: %w", err)
	}
	if identity == nil {
		out.Skipped = true
		return out, nil
	}
	if !i.svc.IsLoaded() {
		return dto.ToggleOutput{}, fmt.Errorf("toggle %s: %w", input.LessonID, apperrors.ErrNotLoaded)
	}
	completed, err := i.svc.Toggle(ctx, *identity, input.ModuleID, input.LessonID)
	if err != nil {
		return dto.ToggleOutput{}, err
	}
	out.Completed = completed
	return out, nil
}

func (i *Interactor) Loaded() <-chan struct{} {
	return i.svc.Loaded()
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	stats := i.svc.Stats()
	out := dto.StatusOutput{
		Loaded:       stats.Loaded,
		LoadedAt:     stats.LoadedAt,
		Degraded:     stats.Degraded,
		LoadError:    stats.LoadError,
		InFlight:     stats.InFlight,
		Submitted:    stats.Submitted,
		Failed:       stats.Failed,
		LastSubmitAt: stats.LastSubmitAt,
		LastError:    stats.LastError,
	}
	identity, err := i.identities.Current(ctx)
	if err != nil {
		return dto.StatusOutput{}, fmt.Errorf("resolve identity: %w", err)
	}
	if identity != nil {
		out.HasIdentity = true
		out.UserID = identity.ID
	}
	return out, nil
}

func (i *Interactor) Wait(ctx context.Context) error {
	return i.svc.Wait(ctx)
}
