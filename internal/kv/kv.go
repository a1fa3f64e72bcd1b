package kv

import "context"

// Store is a namespaced key/value slot. Implementations are durable
// (redis, sqlite) or in-memory; callers treat persistence as best-effort.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const namespace = "sparnet:"

func namespaced(key string) string {
	return namespace + key
}
