package in

import (
	"context"

	"finpro/internal/modules/catalog/dto"
	catalogin "finpro/internal/modules/catalog/port/in"
)

type TUIHandler struct {
	usecase catalogin.Usecase
}

func NewTUIHandler(usecase catalogin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h TUIHandler) GetLesson(ctx context.Context, lessonID string) (dto.LessonOutput, error) {
	return h.usecase.GetLesson(ctx, lessonID)
}

func (h TUIHandler) OpenVideo(ctx context.Context, lessonID string) (dto.LessonOutput, error) {
	return h.usecase.OpenVideo(ctx, lessonID)
}
