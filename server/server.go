// Package server exposes the HTTP surface: account management, the job
// board CRUD, the agent endpoints and generated-file serving. It owns no
// business logic; everything is delegated to the injected components.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ishan11032005GitHub/career-navigator-backend/auth"
	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
	"github.com/Ishan11032005GitHub/career-navigator-backend/mailer"
	"github.com/Ishan11032005GitHub/career-navigator-backend/runner"
	"github.com/Ishan11032005GitHub/career-navigator-backend/store"
)

// Server wires the fiber app over the backend components.
type Server struct {
	app          *fiber.App
	store        *store.Store
	auth         *auth.Manager
	mailer       *mailer.Mailer
	dispatcher   *runner.Dispatcher
	generatedDir string
	logger       logging.Logger
}

// New builds the app with middleware and all routes registered.
func New(st *store.Store, am *auth.Manager, ml *mailer.Mailer, d *runner.Dispatcher, generatedDir string, logger logging.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			ErrorHandler: errorHandler(logger),
		}),
		store:        st,
		auth:         am,
		mailer:       ml,
		dispatcher:   d,
		generatedDir: generatedDir,
		logger:       logger,
	}

	s.app.Use(recover.New())
	s.app.Use(cors.New())
	s.app.Use(s.requestLogger)

	s.routes()
	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) routes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Career Navigator AI Backend Active"})
	})
	s.app.Get("/health", s.health)
	s.app.Get("/health/detailed", s.healthDetailed)

	s.app.Post("/api/signup", s.signup)
	s.app.Post("/api/login", s.login)
	s.app.Post("/api/forgot", s.forgot)
	s.app.Post("/api/reset", s.reset)

	s.app.Get("/download-pdf/:filename", s.downloadPDF)
	s.app.Static("/generated_resumes", s.generatedDir)

	api := s.app.Group("/api", s.requireAuth)
	api.Post("/career", s.career)
	api.Post("/learning", s.learning)
	api.Post("/chat", s.chat)

	api.Get("/jobs", s.listJobs)
	api.Post("/jobs", s.createJob)
	api.Delete("/jobs/:id", s.deleteJob)
	api.Post("/jobs/:id/save", s.saveJob)
	api.Delete("/jobs/:id/save", s.unsaveJob)
	api.Get("/jobs/saved", s.savedJobs)
	api.Post("/jobs/:id/apply", s.apply)
	api.Get("/applications", s.applications)

	api.Post("/learning/chat/save", s.saveChat(store.ChatLearning))
	api.Get("/learning/chat/history", s.chatHistory(store.ChatLearning))
	api.Delete("/learning/chat/clear", s.clearChat(store.ChatLearning))
	api.Post("/career/chat/save", s.saveChat(store.ChatCareer))
	api.Get("/career/chat/history", s.chatHistory(store.ChatCareer))
	api.Delete("/career/chat/clear", s.clearChat(store.ChatCareer))
}

// errorHandler renders every error as a JSON body. fiber.Error carries
// its own status code; anything else is an internal error whose detail
// stays in the logs.
func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Error("unhandled request error", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}

// requestLogger records method, path, status and duration for every call.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "message": "API is running"})
}

func (s *Server) healthDetailed(c *fiber.Ctx) error {
	status := fiber.Map{"status": "healthy", "database": "ok"}
	if err := s.store.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	return c.JSON(status)
}
