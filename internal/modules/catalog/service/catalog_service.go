package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"finpro/internal/modules/catalog/domain"
	catalogout "finpro/internal/modules/catalog/port/out"
	apperrors "finpro/internal/platform/errors"
)

// CatalogService owns the single in-memory catalog. Every read returns a
// copy; the completion flag is the only field it ever mutates.
type CatalogService struct {
	source   catalogout.Source
	launcher catalogout.VideoLauncher
	mu       sync.RWMutex
	catalog  domain.Catalog
}

func NewCatalogService(source catalogout.Source, launcher catalogout.VideoLauncher) *CatalogService {
	return &CatalogService{source: source, launcher: launcher}
}

func (s *CatalogService) Load(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("catalog source is not configured")
	}
	catalog, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}
	s.mu.Lock()
	s.catalog = catalog.Clone()
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) Snapshot() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

func (s *CatalogService) Lesson(lessonID string) (domain.Lesson, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lesson, moduleID, ok := s.catalog.FindLesson(lessonID)
	if !ok {
		return domain.Lesson{}, "", fmt.Errorf("lesson %q: %w", lessonID, apperrors.ErrNotFound)
	}
	return *lesson, moduleID, nil
}

// Toggle negates the flag of lessonID inside moduleID and returns the lesson
// as it is after the change.
func (s *CatalogService) Toggle(moduleID, lessonID string) (domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lesson, ok := s.catalog.Lesson(moduleID, lessonID)
	if !ok {
		return domain.Lesson{}, fmt.Errorf("lesson %q in module %q: %w", lessonID, moduleID, apperrors.ErrNotFound)
	}
	lesson.Completed = !lesson.Completed
	return *lesson, nil
}

// SetCompletion overwrites the flag by lesson id. Unknown ids report false.
func (s *CatalogService) SetCompletion(lessonID string, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lesson, _, ok := s.catalog.FindLesson(lessonID)
	if !ok {
		return false
	}
	lesson.Completed = completed
	return true
}

// OpenVideo launches the lesson's video. Only absolute http(s) links are
// handed to the launcher.
func (s *CatalogService) OpenVideo(ctx context.Context, lessonID string) (domain.Lesson, string, error) {
	lesson, moduleID, err := s.Lesson(lessonID)
	if err != nil {
		return domain.Lesson{}, "", err
	}
	u, err := url.Parse(lesson.VideoURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Lesson{}, "", fmt.Errorf("lesson %q has no playable video: %w", lessonID, apperrors.ErrInvalidInput)
	}
	if s.launcher == nil {
		return domain.Lesson{}, "", fmt.Errorf("video launcher is not configured")
	}
	if err := s.launcher.Open(ctx, u.String()); err != nil {
		return domain.Lesson{}, "", err
	}
	return lesson, moduleID, nil
}
