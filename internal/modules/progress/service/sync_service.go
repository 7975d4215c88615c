package service

import (
	"context"
	"fmt"
	"sync"

	"finpro/internal/modules/progress/domain"
	progressout "finpro/internal/modules/progress/port/out"
	"finpro/internal/platform/clock"
	"finpro/internal/platform/id"
	"finpro/internal/platform/logger"
)

// SyncService keeps local lesson flags in step with the remote store.
// Submissions are fire-and-forget: the local flip is never rolled back.
type SyncService struct {
	clock   clock.Clock
	idGen   id.Generator
	remote  progressout.RemoteStore
	lessons progressout.LessonState
	log     *logger.Logger

	loadedOnce sync.Once
	loaded     chan struct{}
	inflight   sync.WaitGroup

	mu    sync.Mutex
	stats domain.SyncStats
}

func NewSyncService(clock clock.Clock, idGen id.Generator, remote progressout.RemoteStore, lessons progressout.LessonState, log *logger.Logger) *SyncService {
	if log == nil {
		log = logger.Nop()
	}
	return &SyncService{
		clock:   clock,
		idGen:   idGen,
		remote:  remote,
		lessons: lessons,
		log:     log,
		loaded:  make(chan struct{}),
	}
}

// LoadProgress fetches every record for userID and overwrites the flag of each
// known lesson. Fetch or decode failures leave all flags untouched.
func (s *SyncService) LoadProgress(ctx context.Context, userID int64) domain.LoadResult {
	result := domain.LoadResult{UserID: userID}
	records, err := s.remote.Fetch(ctx, userID)
	if err != nil {
		s.log.Warn("progress load failed", "telegram_id", userID, "error", err)
		s.setLoadError(err.Error())
		result.Degraded = true
		return result
	}
	s.setLoadError("")
	result.Fetched = len(records)
	for _, record := range domain.Latest(records) {
		known, err := s.lessons.ApplyCompletion(ctx, record.LessonID, record.Completed)
		if err != nil {
			s.log.Warn("apply progress record failed", "lesson_id", record.LessonID, "error", err)
			result.Ignored++
			continue
		}
		if !known {
			s.log.Debug("ignoring progress for unknown lesson", "lesson_id", record.LessonID)
			result.Ignored++
			continue
		}
		result.Applied++
	}
	s.log.Info("progress loaded", "telegram_id", userID, "fetched", result.Fetched, "applied", result.Applied, "ignored", result.Ignored)
	return result
}

// MarkLoaded records the outcome of a load. The Loaded channel is closed by
// the first call only; Degraded always reflects the latest load.
func (s *SyncService) MarkLoaded(degraded bool) {
	s.mu.Lock()
	s.stats.Loaded = true
	s.stats.LoadedAt = s.clock.Now()
	s.stats.Degraded = degraded
	s.mu.Unlock()
	s.loadedOnce.Do(func() { close(s.loaded) })
}

func (s *SyncService) Loaded() <-chan struct{} {
	return s.loaded
}

func (s *SyncService) IsLoaded() bool {
	select {
	case <-s.loaded:
		return true
	default:
		return false
	}
}

// Toggle flips the lesson locally and returns the new flag right away. The
// remote write runs in the background, detached from ctx cancellation.
func (s *SyncService) Toggle(ctx context.Context, identity domain.Identity, moduleID, lessonID string) (bool, error) {
	completed, err := s.lessons.Toggle(ctx, moduleID, lessonID)
	if err != nil {
		return false, fmt.Errorf("toggle lesson: %w", err)
	}
	submission := domain.Submission{
		RequestID: s.idGen.New(),
		Identity:  identity,
		LessonID:  lessonID,
		Completed: completed,
	}

	s.mu.Lock()
	s.stats.InFlight++
	s.mu.Unlock()
	s.inflight.Add(1)
	go s.submit(context.WithoutCancel(ctx), submission)
	return completed, nil
}

func (s *SyncService) submit(ctx context.Context, submission domain.Submission) {
	defer s.inflight.Done()
	err := s.remote.Submit(ctx, submission)

	s.mu.Lock()
	s.stats.InFlight--
	s.stats.LastSubmitAt = s.clock.Now()
	if err != nil {
		s.stats.Failed++
		s.stats.LastError = err.Error()
	} else {
		s.stats.Submitted++
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("progress submit failed",
			"request_id", submission.RequestID,
			"telegram_id", submission.Identity.ID,
			"lesson_id", submission.LessonID,
			"is_completed", submission.Completed,
			"error", err,
		)
		return
	}
	s.log.Debug("progress submitted", "request_id", submission.RequestID, "lesson_id", submission.LessonID, "is_completed", submission.Completed)
}

// Wait blocks until every submission started so far has settled.
func (s *SyncService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for submissions: %w", ctx.Err())
	}
}

func (s *SyncService) Stats() domain.SyncStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *SyncService) setLoadError(msg string) {
	s.mu.Lock()
	s.stats.LoadError = msg
	s.mu.Unlock()
}
