package server

import (
	"context"
	"errors"
	"log"

	"backend-sparnet/internal/auth"
	"backend-sparnet/internal/config"
	"backend-sparnet/internal/event"
	"backend-sparnet/internal/feed"
	"backend-sparnet/internal/gym"
	"backend-sparnet/internal/identity"
	"backend-sparnet/internal/kv"
	"backend-sparnet/internal/media"
	"backend-sparnet/internal/message"
	"backend-sparnet/internal/profile"
	"backend-sparnet/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Deps carries the backing services the server routes over. Any field
// may be nil in tests; routes touching a nil dependency simply fail.
type Deps struct {
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Slot     kv.Store
	Identity identity.Provider
	Profiles profile.Store
}

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Deps   Deps
	Stream *stream.Hub
	Feed   *feed.ViewModel
}

func NewServer(cfg config.Config, deps Deps) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Deps:   deps,
		Stream: stream.NewHub(deps.Redis),
	}

	slot := deps.Slot
	if slot == nil {
		slot = kv.NewMemory()
	}
	s.Feed = feed.NewViewModel(context.Background(), feed.NewStore(slot), feed.Author{
		Name:   "Spar-net Team",
		Handle: "sparnet",
	}, s.Stream)

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Deps.Identity, s.Deps.Profiles))
	profile.RegisterRoutes(s.App.Group("/profiles"), s.Deps.Profiles)
	feed.RegisterRoutes(s.App.Group("/feed"), s.Feed, jwtMiddleware)
	event.RegisterRoutes(s.App.Group("/events"), event.NewService(s.Deps.DB), jwtMiddleware)
	gym.RegisterRoutes(s.App.Group("/gyms"), gym.NewService(s.Deps.DB), jwtMiddleware)
	message.RegisterRoutes(s.App.Group("/messages"), message.NewService(s.Deps.DB, s.Stream), jwtMiddleware)
	media.RegisterRoutes(s.App.Group("/media"), media.NewService(s.Deps.DB, s.Cfg.SupabaseURL), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)

	s.App.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	})
}

// errorHandler renders every handler error as {"error": message}.
// Errors no handler classified (panics, stray errors) are logged and
// masked as internal_error.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			log.Printf("request failed: %s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	log.Printf("request failed: %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
}
