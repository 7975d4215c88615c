package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finpro/internal/modules/progress/domain"
	progressout "finpro/internal/modules/progress/port/out"
	"finpro/internal/platform/httpx"
	"finpro/internal/platform/logger"
)

const (
	defaultRetryBackoff = time.Second
	maxRetryAfter       = 10 * time.Second
	maxResponseBytes    = 4 << 20
)

var _ progressout.RemoteStore = (*HTTPStore)(nil)

type HTTPStoreConfig struct {
	Endpoint string
	// Timeout bounds a single attempt. Zero disables it.
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPClient   *http.Client
}

// HTTPStore talks to the progress endpoint: GET ?telegram_id= for reads and a
// JSON POST per lesson for writes.
type HTTPStore struct {
	log        *logger.Logger
	endpoint   *url.URL
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewHTTPStore(log *logger.Logger, cfg HTTPStoreConfig) (*HTTPStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	endpoint, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse progress endpoint: %w", err)
	}
	if (endpoint.Scheme != "http" && endpoint.Scheme != "https") || endpoint.Host == "" {
		return nil, fmt.Errorf("progress endpoint must be an absolute http(s) url, got %q", cfg.Endpoint)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout < 0 {
			timeout = 0
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPStore{
		log:        log.With("client", "ProgressHTTPStore"),
		endpoint:   endpoint,
		httpClient: client,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
	}, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "progress: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 512 {
		msg = msg[:512] + "..."
	}
	return fmt.Sprintf("progress http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type submitRequest struct {
	TelegramID   int64        `json:"telegram_id"`
	TelegramUser telegramUser `json:"telegram_user"`
	LessonID     string       `json:"lesson_id"`
	IsCompleted  bool         `json:"is_completed"`
}

type telegramUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

func (s *HTTPStore) Fetch(ctx context.Context, userID int64) ([]domain.Record, error) {
	target := *s.endpoint
	query := target.Query()
	query.Set("telegram_id", strconv.FormatInt(userID, 10))
	target.RawQuery = query.Encode()

	raw, err := s.do(ctx, http.MethodGet, target.String(), nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetch progress: %w", err)
	}
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return records, nil
}

func (s *HTTPStore) Submit(ctx context.Context, submission domain.Submission) error {
	payload, err := json.Marshal(submitRequest{
		TelegramID: submission.Identity.ID,
		TelegramUser: telegramUser{
			FirstName: submission.Identity.FirstName,
			LastName:  submission.Identity.LastName,
			Username:  submission.Identity.Username,
		},
		LessonID:    submission.LessonID,
		IsCompleted: submission.Completed,
	})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	if _, err := s.do(ctx, http.MethodPost, s.endpoint.String(), payload, submission.RequestID); err != nil {
		return fmt.Errorf("submit progress for %s: %w", submission.LessonID, err)
	}
	return nil
}

// decodeRecords accepts {"progress": [...]}. Anything that parses but does
// not have that shape yields no records; elements without a string lesson_id
// or a boolean is_completed are skipped.
func decodeRecords(raw []byte) ([]domain.Record, error) {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, nil
	}
	items, ok := obj["progress"].([]any)
	if !ok {
		return nil, nil
	}
	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lessonID, ok := fields["lesson_id"].(string)
		if !ok || strings.TrimSpace(lessonID) == "" {
			continue
		}
		completed, ok := fields["is_completed"].(bool)
		if !ok {
			continue
		}
		record := domain.Record{LessonID: lessonID, Completed: completed}
		if at, ok := fields["completed_at"].(string); ok {
			if ts, err := time.Parse(time.RFC3339, at); err == nil {
				ts = ts.UTC()
				record.CompletedAt = &ts
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *HTTPStore) do(ctx context.Context, method, target string, body []byte, requestID string) ([]byte, error) {
	backoff := s.backoff
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, raw, err := s.doOnce(ctx, method, target, body, requestID)
		if err == nil {
			return raw, nil
		}
		if !httpx.IsRetryableError(err) || attempt == s.maxRetries {
			return nil, err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, maxRetryAfter))
		s.log.Warn("progress request retrying",
			"method", method,
			"attempt", attempt+1,
			"max_retries", s.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return nil, err
		}
		backoff *= 2
	}
	return nil, errors.New("unreachable retry loop")
}

func (s *HTTPStore) doOnce(ctx context.Context, method, target string, body []byte, requestID string) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}
