package out

import (
	"context"

	catalogdto "finpro/internal/modules/catalog/dto"
	catalogin "finpro/internal/modules/catalog/port/in"
	progressout "finpro/internal/modules/progress/port/out"
)

// CatalogLessonState reconciles into the catalog module's completion flags.
type CatalogLessonState struct {
	catalog catalogin.Usecase
}

func NewCatalogLessonState(catalog catalogin.Usecase) progressout.LessonState {
	return &CatalogLessonState{catalog: catalog}
}

func (a *CatalogLessonState) ApplyCompletion(ctx context.Context, lessonID string, completed bool) (bool, error) {
	return a.catalog.SetCompletion(ctx, catalogdto.SetCompletionInput{LessonID: lessonID, Completed: completed})
}

func (a *CatalogLessonState) Toggle(ctx context.Context, moduleID, lessonID string) (bool, error) {
	lesson, err := a.catalog.Toggle(ctx, catalogdto.ToggleInput{ModuleID: moduleID, LessonID: lessonID})
	if err != nil {
		return false, err
	}
	return lesson.Completed, nil
}
