package feed

import (
	"context"
	"encoding/json"
	"log"

	"backend-sparnet/internal/kv"
)

const postsSlot = "posts"

// Store persists the whole post collection in a single durable slot.
// Reads that fail for any reason fall back to the seed posts; writes are
// best-effort and never surface an error to the caller.
type Store struct {
	slots kv.Store
}

func NewStore(slots kv.Store) *Store {
	return &Store{slots: slots}
}

func (s *Store) Load(ctx context.Context) []Post {
	raw, ok, err := s.slots.Get(ctx, postsSlot)
	if err != nil {
		log.Printf("feed: load failed, using seed posts: %v", err)
		return SeedPosts()
	}
	if !ok {
		return SeedPosts()
	}

	var posts []Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil || posts == nil {
		// corrupt or non-array content is treated as first run
		return SeedPosts()
	}
	return posts
}

func (s *Store) Save(ctx context.Context, posts []Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		log.Printf("feed: encode posts failed: %v", err)
		return
	}
	if err := s.slots.Set(ctx, postsSlot, string(raw)); err != nil {
		log.Printf("feed: save posts failed: %v", err)
	}
}
