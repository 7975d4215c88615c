package in

import (
	"context"

	"finpro/internal/modules/catalog/dto"
	catalogin "finpro/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListModules(ctx context.Context) ([]dto.ModuleOutput, error) {
	return h.usecase.ListModules(ctx)
}

func (h CLIHandler) GetLesson(ctx context.Context, lessonID string) (dto.LessonOutput, error) {
	return h.usecase.GetLesson(ctx, lessonID)
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) OpenVideo(ctx context.Context, lessonID string) (dto.LessonOutput, error) {
	return h.usecase.OpenVideo(ctx, lessonID)
}
