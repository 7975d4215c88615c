package in

import (
	"context"

	"finpro/internal/modules/progress/dto"
	progressin "finpro/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context, moduleID, lessonID string) (dto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx, dto.ToggleInput{ModuleID: moduleID, LessonID: lessonID})
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Wait(ctx context.Context) error {
	return h.usecase.Wait(ctx)
}
