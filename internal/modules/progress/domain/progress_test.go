package domain_test

import (
	"testing"

	"finpro/internal/modules/progress/domain"
)

func TestLatestKeepsLastValuePerLesson(t *testing.T) {
	t.Parallel()
	got := domain.Latest([]domain.Record{
		{LessonID: "a", Completed: true},
		{LessonID: "b", Completed: true},
		{LessonID: "a", Completed: false},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].LessonID != "a" || got[0].Completed {
		t.Fatalf("expected a=false first, got %+v", got[0])
	}
	if got[1].LessonID != "b" || !got[1].Completed {
		t.Fatalf("expected b=true second, got %+v", got[1])
	}
	if len(domain.Latest(nil)) != 0 {
		t.Fatalf("empty input should stay empty")
	}
}
