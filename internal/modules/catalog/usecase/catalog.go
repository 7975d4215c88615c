package usecase

import (
	"context"
	"fmt"
	"strings"

	"finpro/internal/modules/catalog/domain"
	"finpro/internal/modules/catalog/dto"
	catalogin "finpro/internal/modules/catalog/port/in"
	"finpro/internal/modules/catalog/service"
	apperrors "finpro/internal/platform/errors"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListModules(_ context.Context) ([]dto.ModuleOutput, error) {
	return toModuleOutputs(i.svc.Snapshot()), nil
}

func (i *Interactor) GetLesson(_ context.Context, lessonID string) (dto.LessonOutput, error) {
	if strings.TrimSpace(lessonID) == "" {
		return dto.LessonOutput{}, fmt.Errorf("lesson id is required: %w", apperrors.ErrInvalidInput)
	}
	lesson, moduleID, err := i.svc.Lesson(lessonID)
	if err != nil {
		return dto.LessonOutput{}, err
	}
	return toLessonOutput(moduleID, lesson), nil
}

func (i *Interactor) Overview(_ context.Context) (dto.OverviewOutput, error) {
	catalog := i.svc.Snapshot()
	return dto.OverviewOutput{
		Overall: toProgressOutput(catalog.Progress()),
		Modules: toModuleOutputs(catalog),
	}, nil
}

func (i *Interactor) Toggle(_ context.Context, input dto.ToggleInput) (dto.LessonOutput, error) {
	if strings.TrimSpace(input.ModuleID) == "" || strings.TrimSpace(input.LessonID) == "" {
		return dto.LessonOutput{}, fmt.Errorf("module id and lesson id are required: %w", apperrors.ErrInvalidInput)
	}
	lesson, err := i.svc.Toggle(input.ModuleID, input.LessonID)
	if err != nil {
		return dto.LessonOutput{}, err
	}
	return toLessonOutput(input.ModuleID, lesson), nil
}

func (i *Interactor) SetCompletion(_ context.Context, input dto.SetCompletionInput) (bool, error) {
	if strings.TrimSpace(input.LessonID) == "" {
		return false, fmt.Errorf("lesson id is required: %w", apperrors.ErrInvalidInput)
	}
	return i.svc.SetCompletion(input.LessonID, input.Completed), nil
}

func (i *Interactor) OpenVideo(ctx context.Context, lessonID string) (dto.LessonOutput, error) {
	if strings.TrimSpace(lessonID) == "" {
		return dto.LessonOutput{}, fmt.Errorf("lesson id is required: %w", apperrors.ErrInvalidInput)
	}
	lesson, moduleID, err := i.svc.OpenVideo(ctx, lessonID)
	if err != nil {
		return dto.LessonOutput{}, err
	}
	return toLessonOutput(moduleID, lesson), nil
}

func toModuleOutputs(catalog domain.Catalog) []dto.ModuleOutput {
	out := make([]dto.ModuleOutput, 0, len(catalog.Modules))
	for _, m := range catalog.Modules {
		lessons := make([]dto.LessonOutput, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			lessons = append(lessons, toLessonOutput(m.ID, l))
		}
		out = append(out, dto.ModuleOutput{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Icon:        m.Icon,
			Lessons:     lessons,
			Progress:    toProgressOutput(m.Progress()),
		})
	}
	return out
}

func toLessonOutput(moduleID string, l domain.Lesson) dto.LessonOutput {
	return dto.LessonOutput{
		ID:          l.ID,
		ModuleID:    moduleID,
		Title:       l.Title,
		Description: l.Description,
		VideoURL:    l.VideoURL,
		Duration:    l.Duration,
		Completed:   l.Completed,
	}
}

func toProgressOutput(p domain.Progress) dto.ProgressOutput {
	return dto.ProgressOutput{Completed: p.Completed, Total: p.Total, Percent: p.Percent}
}
