package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

var errSave = errors.New("save error")

func TestMediaUploadHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "avatar").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock, ""), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"user_id": "user-1", "file_name": "me.png", "kind": "avatar"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status: %v", err)
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out.URL, "https://media.sparnet.app/avatar/") || !strings.HasSuffix(out.URL, "/me.png") {
		t.Fatalf("unexpected url: %s", out.URL)
	}
}

func TestMediaUploadRejectsUnknownKind(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(nil, ""), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"user_id": "user-1", "kind": "executable"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestMediaUploadRequiresUser(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(nil, ""), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"kind": "avatar"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestMediaUploadError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "post_photo").
		WillReturnError(errSave)

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock, ""), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"user_id": "user-1", "file_name": "fight.jpg", "kind": "post_photo"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected error status")
	}
}

func TestMediaSanitizesFileName(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "avatar").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock, "")
	obj, err := svc.SaveObject(context.Background(), "user-1", "avatar", "../../etc/passwd")
	if err != nil {
		t.Fatalf("save object: %v", err)
	}
	if strings.Contains(strings.TrimPrefix(obj.URL, "https://media.sparnet.app/avatar/"+obj.ID+"/"), "/") {
		t.Fatalf("file name not sanitized: %s", obj.URL)
	}
}

func TestMediaObjectsList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, url, kind, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "url", "kind", "created_at"}).
			AddRow("obj-1", "user-1", "https://media.sparnet.app/avatar/obj-1/me.png", "avatar", time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock, ""), func(c *fiber.Ctx) error { return c.Next() })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/media/?user_id=user-1", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list media: err=%v status=%d", err, resp.StatusCode)
	}
	var objects []Object
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil || len(objects) != 1 {
		t.Fatalf("decode: err=%v objects=%v", err, objects)
	}
}
