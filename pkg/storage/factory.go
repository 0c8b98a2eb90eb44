package storage

import (
	"context"
	"fmt"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// NewBackend builds the backend named by driver. target is the Redis URL or
// the SQLite file path; it is ignored for the memory driver.
func NewBackend(ctx context.Context, driver, target string) (Backend, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryBackend(), nil
	case DriverRedis:
		return NewRedisBackendFromURL(ctx, target)
	case DriverSQLite:
		return NewSQLiteBackend(target)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
