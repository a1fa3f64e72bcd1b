package media

import (
	"context"
	"strings"
	"time"

	"backend-sparnet/internal/db"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const uploadTTL = 15 * time.Minute

// Kinds of objects users may upload.
var kinds = map[string]bool{
	"avatar":     true,
	"post_photo": true,
}

type Object struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db      db.Querier
	baseURL string
}

func NewService(db db.Querier, baseURL string) *Service {
	if baseURL == "" {
		baseURL = "https://media.sparnet.app"
	}
	return &Service{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Service) SaveObject(ctx context.Context, userID, kind, fileName string) (Object, error) {
	if !kinds[kind] {
		return Object{}, fiber.NewError(fiber.StatusBadRequest, "kind must be avatar or post_photo")
	}
	if fileName == "" {
		fileName = "upload"
	}
	fileName = strings.ReplaceAll(fileName, "/", "_")

	obj := Object{
		ID:     uuid.NewString(),
		UserID: userID,
		Kind:   kind,
	}
	obj.URL = s.baseURL + "/" + kind + "/" + obj.ID + "/" + fileName
	row := s.db.QueryRow(ctx, `
		INSERT INTO media_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, obj.ID, obj.UserID, obj.URL, obj.Kind)
	if err := row.Scan(&obj.CreatedAt); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *Service) Objects(ctx context.Context, userID string) ([]Object, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM media_objects WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []Object
	for rows.Next() {
		var o Object
		if err := rows.Scan(&o.ID, &o.UserID, &o.URL, &o.Kind, &o.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID   string `json:"user_id"`
			FileName string `json:"file_name"`
			Kind     string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		obj, err := svc.SaveObject(c.Context(), body.UserID, body.Kind, body.FileName)
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"id":         obj.ID,
			"url":        obj.URL,
			"expires_at": time.Now().Add(uploadTTL),
		})
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		objects, err := svc.Objects(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(objects)
	})
}
