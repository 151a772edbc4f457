// Package server contains the HTTP handlers for the portfolio API.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/github"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/service"
	"portfolio/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "portfolio-api"
	tokenAudience = "portfolio-admin"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo          repository.UserRepository
	projectRepo       repository.ProjectRepository
	publicationRepo   repository.PublicationRepository
	certificationRepo repository.CertificationRepository
	blogRepo          repository.BlogRepository
	contactRepo       repository.ContactRepository
	accessRepo        repository.AccessRepository

	accessService  *service.AccessService
	blogService    *service.BlogService
	projectService *service.ProjectService

	store        storage.ObjectStore
	githubClient *github.Client
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	server, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	if cfg.S3Bucket != "" {
		store, err := storage.NewS3Store(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("object store init failed: %w", err)
		}
		server.store = store
	}

	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:            cfg,
		db:                db,
		redis:             redisClient,
		promMiddleware:    middleware.InitMetrics("portfolio-api"),
		userRepo:          repository.NewUserRepository(db),
		projectRepo:       repository.NewProjectRepository(db),
		publicationRepo:   repository.NewPublicationRepository(db),
		certificationRepo: repository.NewCertificationRepository(db),
		blogRepo:          repository.NewBlogRepository(db),
		contactRepo:       repository.NewContactRepository(db),
		accessRepo:        repository.NewAccessRepository(db),
	}

	capability := cache.NewCapability(redisClient)
	server.accessService = service.NewAccessService(server.accessRepo, server.projectRepo, capability)
	server.blogService = service.NewBlogService(server.blogRepo)
	server.projectService = service.NewProjectService(server.projectRepo)
	server.githubClient = github.NewClient(cfg.GithubAPIBaseURL, cfg.GithubToken)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry span per request; no-op tracer unless tracing is enabled
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public portfolio content
	projects := api.Group("/projects")
	projects.Get("/", s.GetProjects)
	projects.Get("/featured", s.GetFeaturedProjects)
	projects.Get("/:slug/downloads", s.GetProjectDownloads)
	projects.Get("/:slug", s.GetProject)

	api.Get("/publications", s.GetPublications)
	api.Get("/certifications", s.GetCertifications)

	blog := api.Group("/blog")
	blog.Get("/", s.GetBlogPosts)
	blog.Get("/:slug", s.GetBlogPost)

	// Contact form
	api.Post("/contact", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "contact"), s.SubmitContactMessage)

	// Access-request workflow (public side)
	access := api.Group("/access")
	access.Post("/requests", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "access_request"), s.CreateAccessRequest)
	access.Get("/check", s.CheckAccess)

	// GitHub metadata widget
	api.Get("/github/:owner/:repo", s.GetGithubRepo)

	// Protected routes
	protected := api.Group("", s.AuthRequired())
	protected.Get("/auth/session", s.Session)
	protected.Post("/auth/logout", s.Logout)
	protected.Put("/auth/credentials", s.UpdateCredentials)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())

	adminProjects := admin.Group("/projects")
	adminProjects.Get("/", s.AdminListProjects)
	adminProjects.Post("/", s.CreateProject)
	adminProjects.Post("/:id/visibility", s.CycleProjectVisibility)
	adminProjects.Post("/:id/feature", s.ToggleProjectFeatured)
	adminProjects.Put("/:id", s.UpdateProject)
	adminProjects.Delete("/:id", s.DeleteProject)

	adminPublications := admin.Group("/publications")
	adminPublications.Get("/", s.AdminListPublications)
	adminPublications.Post("/", s.CreatePublication)
	adminPublications.Put("/:id", s.UpdatePublication)
	adminPublications.Delete("/:id", s.DeletePublication)

	adminCertifications := admin.Group("/certifications")
	adminCertifications.Get("/", s.AdminListCertifications)
	adminCertifications.Post("/", s.CreateCertification)
	adminCertifications.Put("/:id", s.UpdateCertification)
	adminCertifications.Delete("/:id", s.DeleteCertification)

	adminBlog := admin.Group("/blog")
	adminBlog.Get("/", s.AdminListBlogPosts)
	adminBlog.Post("/", s.CreateBlogPost)
	adminBlog.Put("/:id", s.UpdateBlogPost)
	adminBlog.Delete("/:id", s.DeleteBlogPost)

	adminMessages := admin.Group("/messages")
	adminMessages.Get("/", s.AdminListMessages)
	adminMessages.Post("/:id/read", s.ToggleMessageRead)
	adminMessages.Post("/:id/star", s.ToggleMessageStarred)
	adminMessages.Delete("/:id", s.DeleteMessage)

	adminAccess := admin.Group("/access-requests")
	adminAccess.Get("/", s.AdminListAccessRequests)
	adminAccess.Post("/:id/approve", s.ApproveAccessRequest)
	adminAccess.Post("/:id/reject", s.RejectAccessRequest)

	admin.Post("/uploads", s.UploadFile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: the site degrades to uncached reads without it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
			isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
			if err == nil && isBlacklisted > 0 {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Portfolio API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
