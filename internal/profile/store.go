package profile

import "context"

// Store is the profile persistence boundary. The Postgres implementation
// talks to a local database; the Supabase implementation proxies to the
// managed service's REST layer.
type Store interface {
	// Upsert inserts or updates the row keyed by user_id.
	Upsert(ctx context.Context, params UpsertParams) (Profile, error)

	// CreateSkeleton inserts an empty profile row for a freshly created user.
	CreateSkeleton(ctx context.Context, userID string) error
}
