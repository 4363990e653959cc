// Package metadata persists the client's key/value storage (the terminal
// equivalent of browser local storage) in SQLite.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports ok=false for a
// missing key rather than returning an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
