package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tutorai-be/internal/pkg/logger"
)

const logModule = "Storage"

var (
	// ErrNotFound is returned by backends for a missing key.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is reported when a serialized value is larger than the adapter quota.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Well-known keys. Each one is serialized independently.
const (
	KeyChatSessions   = "chatSessions"
	KeySelectedCourse = "selectedCourse"
	KeySelectedTopic  = "selectedTopic"
	KeyPdfContext     = "pdfContext"
	KeyCourseSlots    = "courseSlots"
	KeyActivityStats  = "activityStats"
)

// Backend is a raw byte key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// WarningFunc receives user-visible storage notices.
type WarningFunc func(key string, err error)

// Adapter is typed JSON persistence over a Backend. It never lets a storage
// failure escape: writes report through the warning hook and reads degrade to
// "absent".
type Adapter struct {
	backend    Backend
	namespace  string
	quotaBytes int
	log        logger.ILogger
	onWarning  WarningFunc
}

type Option func(*Adapter)

// WithQuota caps the serialized size of a single value. Zero disables the cap.
func WithQuota(bytes int) Option {
	return func(a *Adapter) {
		a.quotaBytes = bytes
	}
}

func WithWarningHook(fn WarningFunc) Option {
	return func(a *Adapter) {
		a.onWarning = fn
	}
}

func NewAdapter(backend Backend, namespace string, log logger.ILogger, opts ...Option) *Adapter {
	a := &Adapter{
		backend:   backend,
		namespace: namespace,
		log:       log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) fullKey(key string) string {
	if a.namespace == "" {
		return key
	}
	return fmt.Sprintf("tutor:%s:%s", a.namespace, key)
}

// Save serializes value under key. It returns false when nothing was written;
// the previously stored value is left as it was.
func (a *Adapter) Save(ctx context.Context, key string, value interface{}) bool {
	data, err := json.Marshal(value)
	if err != nil {
		a.warn(key, fmt.Errorf("marshal %s: %w", key, err))
		return false
	}

	if a.quotaBytes > 0 && len(data) > a.quotaBytes {
		a.warn(key, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrQuotaExceeded, key, len(data), a.quotaBytes))
		return false
	}

	if err := a.backend.Set(ctx, a.fullKey(key), data); err != nil {
		a.warn(key, fmt.Errorf("write %s: %w", key, err))
		return false
	}
	return true
}

// Raw returns the stored bytes for key, or false when absent or unreadable.
func (a *Adapter) Raw(ctx context.Context, key string) ([]byte, bool) {
	data, err := a.backend.Get(ctx, a.fullKey(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.Warn(logModule, "Read failed, treating as absent", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	return data, true
}

// Clear removes key. Missing keys are fine.
func (a *Adapter) Clear(ctx context.Context, key string) {
	if err := a.backend.Delete(ctx, a.fullKey(key)); err != nil && !errors.Is(err, ErrNotFound) {
		a.warn(key, fmt.Errorf("delete %s: %w", key, err))
	}
}

func (a *Adapter) warn(key string, err error) {
	a.log.Warn(logModule, "Value not saved", map[string]interface{}{
		"namespace": a.namespace,
		"key":       key,
		"error":     err.Error(),
	})
	if a.onWarning != nil {
		a.onWarning(key, err)
	}
}

// Load decodes the value stored under key. Missing, corrupt or undecodable
// entries all come back as (zero, false).
func Load[T any](ctx context.Context, a *Adapter, key string) (T, bool) {
	var out T
	data, ok := a.Raw(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		a.log.Warn(logModule, "Corrupt value, treating as absent", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		var zero T
		return zero, false
	}
	return out, true
}
