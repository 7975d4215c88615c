package in

import (
	"context"

	"finpro/internal/modules/catalog/dto"
)

type Usecase interface {
	ListModules(ctx context.Context) ([]dto.ModuleOutput, error)
	GetLesson(ctx context.Context, lessonID string) (dto.LessonOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	Toggle(ctx context.Context, input dto.ToggleInput) (dto.LessonOutput, error)
	SetCompletion(ctx context.Context, input dto.SetCompletionInput) (bool, error)
	OpenVideo(ctx context.Context, lessonID string) (dto.LessonOutput, error)
}
