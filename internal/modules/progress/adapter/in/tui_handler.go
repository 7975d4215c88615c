package in

import (
	"context"

	"finpro/internal/modules/progress/dto"
	progressin "finpro/internal/modules/progress/port/in"
)

type TUIHandler struct {
	usecase progressin.Usecase
}

func NewTUIHandler(usecase progressin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Load(ctx context.Context) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx)
}

func (h TUIHandler) Toggle(ctx context.Context, moduleID, lessonID string) (dto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx, dto.ToggleInput{ModuleID: moduleID, LessonID: lessonID})
}

func (h TUIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h TUIHandler) Loaded() <-chan struct{} {
	return h.usecase.Loaded()
}

func (h TUIHandler) Wait(ctx context.Context) error {
	return h.usecase.Wait(ctx)
}
