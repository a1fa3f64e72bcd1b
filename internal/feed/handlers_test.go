package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-sparnet/internal/kv"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *ViewModel) {
	t.Helper()
	slots := kv.NewMemory()
	vm := NewViewModel(context.Background(), NewStore(slots), Author{Name: "Server"}, nil)

	app := fiber.New()
	RegisterRoutes(app.Group("/feed"), vm, func(c *fiber.Ctx) error { return c.Next() })
	return app, vm
}

func TestFeedHandlersCreateAndList(t *testing.T) {
	app, _ := newTestApp(t)

	body, _ := json.Marshal(map[string]string{
		"content":    "who trains tonight?",
		"authorName": "Emma Williams",
		"handle":     "@emmaw",
	})
	req := httptest.NewRequest(http.MethodPost, "/feed/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create post: err=%v status=%d", err, resp.StatusCode)
	}

	var created Post
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created post: %v", err)
	}
	if created.AuthorName != "Emma Williams" || created.ID == "" {
		t.Fatalf("unexpected created post: %+v", created)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/feed/posts", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list posts: err=%v status=%d", err, resp.StatusCode)
	}
	var listed []Post
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) == 0 || listed[0].ID != created.ID {
		t.Fatalf("expected created post at top of feed")
	}
}

func TestFeedHandlersBlankContentRejected(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/feed/posts", bytes.NewReader([]byte(`{"content":"   "}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank content, got %d", resp.StatusCode)
	}
}

func TestFeedHandlersLikeAndDelete(t *testing.T) {
	app, vm := newTestApp(t)

	post, _ := vm.Create(context.Background(), "like me")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/feed/posts/"+post.ID+"/like", nil))
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("like: err=%v status=%d", err, resp.StatusCode)
	}
	if got := vm.List()[0]; !got.Liked || got.Likes != post.Likes+1 {
		t.Fatalf("like not applied: %+v", got)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/feed/posts/"+post.ID, nil))
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: err=%v status=%d", err, resp.StatusCode)
	}
	for _, p := range vm.List() {
		if p.ID == post.ID {
			t.Fatalf("post not deleted")
		}
	}
}
