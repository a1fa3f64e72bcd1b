package feed

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventSink receives a JSON event for every feed mutation. stream.Hub
// satisfies this; a nil sink disables publishing.
type EventSink interface {
	Broadcast(topic string, payload []byte)
}

const eventTopic = "community"

// ViewModel owns the in-memory post collection and re-persists the whole
// collection through the Store on every mutation.
type ViewModel struct {
	mu     sync.Mutex
	posts  []Post
	store  *Store
	author Author
	events EventSink

	now   func() time.Time
	newID func() string
}

func NewViewModel(ctx context.Context, store *Store, author Author, events EventSink) *ViewModel {
	return &ViewModel{
		posts:  store.Load(ctx),
		store:  store,
		author: author,
		events: events,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create prepends a new post authored by the local viewer. Whitespace-only
// content is a no-op.
func (vm *ViewModel) Create(ctx context.Context, content string) (Post, bool) {
	return vm.CreateAs(ctx, vm.author, content)
}

func (vm *ViewModel) CreateAs(ctx context.Context, author Author, content string) (Post, bool) {
	if strings.TrimSpace(content) == "" {
		return Post{}, false
	}

	vm.mu.Lock()
	post := Post{
		ID:         vm.newID(),
		AuthorName: author.Name,
		Handle:     author.Handle,
		AvatarURL:  author.AvatarURL,
		Content:    content,
		CreatedAt:  vm.now().UnixMilli(),
	}
	vm.posts = append([]Post{post}, vm.posts...)
	snapshot := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.store.Save(ctx, snapshot)
	vm.publish("post.created", post)
	return post, true
}

// ToggleLike flips the local viewer's like on a post, adjusting the counter
// by exactly one in either direction. Unknown ids are a no-op.
func (vm *ViewModel) ToggleLike(ctx context.Context, id string) {
	vm.mu.Lock()
	var toggled *Post
	for i := range vm.posts {
		if vm.posts[i].ID != id {
			continue
		}
		if vm.posts[i].Liked {
			vm.posts[i].Liked = false
			if vm.posts[i].Likes > 0 {
				vm.posts[i].Likes--
			}
		} else {
			vm.posts[i].Liked = true
			vm.posts[i].Likes++
		}
		toggled = &vm.posts[i]
		break
	}
	if toggled == nil {
		vm.mu.Unlock()
		return
	}
	post := *toggled
	snapshot := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.store.Save(ctx, snapshot)
	vm.publish("post.liked", post)
}

// Delete removes the post with the given id, if present.
func (vm *ViewModel) Delete(ctx context.Context, id string) {
	vm.mu.Lock()
	found := false
	kept := vm.posts[:0]
	for _, p := range vm.posts {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	vm.posts = kept
	if !found {
		vm.mu.Unlock()
		return
	}
	snapshot := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.store.Save(ctx, snapshot)
	vm.publish("post.deleted", Post{ID: id})
}

// List returns the posts sorted by createdAt descending. The sort is stable,
// so equal timestamps keep their stored order.
func (vm *ViewModel) List() []Post {
	vm.mu.Lock()
	posts := vm.snapshotLocked()
	vm.mu.Unlock()

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts
}

func (vm *ViewModel) snapshotLocked() []Post {
	snapshot := make([]Post, len(vm.posts))
	copy(snapshot, vm.posts)
	return snapshot
}

func (vm *ViewModel) publish(kind string, post Post) {
	if vm.events == nil {
		return
	}
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		Post Post   `json:"post"`
	}{Type: kind, Post: post})
	if err != nil {
		return
	}
	vm.events.Broadcast(eventTopic, payload)
}
