package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/boardsync/internal/api/handler"
	customMiddleware "github.com/Rrens/boardsync/internal/api/middleware"
	"github.com/Rrens/boardsync/internal/config"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
	"github.com/Rrens/boardsync/internal/repository/redis"
	"github.com/Rrens/boardsync/internal/repository/sqlstore"
	"github.com/Rrens/boardsync/internal/security"
	"github.com/Rrens/boardsync/internal/service"
)

// Dependencies are the connected backends the router wires services to.
// RedisClient and ActivityRepo are optional.
type Dependencies struct {
	DB           *sqlstore.DB
	RedisClient  *redis.Client
	ActivityRepo domain.ActivityRepository
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	db := deps.DB
	activityRepo := deps.ActivityRepo
	if activityRepo == nil {
		activityRepo = sqlstore.NewActivityRepository(db)
	}
	repos := service.Repositories{
		Tx:         db,
		Users:      sqlstore.NewUserRepository(db),
		Workspaces: sqlstore.NewWorkspaceRepository(db),
		Boards:     sqlstore.NewBoardRepository(db),
		Lists:      sqlstore.NewListRepository(db),
		Cards:      sqlstore.NewCardRepository(db),
		Comments:   sqlstore.NewCommentRepository(db),
		Shares:     sqlstore.NewShareRepository(db),
		Activity:   activityRepo,
	}
	resolver := permission.NewResolver(sqlstore.NewHierarchyRepository(db))

	// Initialize services
	authService := service.NewAuthService(repos.Users, jwtManager)
	activityLogger := service.NewActivityLogger(repos.Activity, resolver)
	syncService := service.NewSyncService(repos, resolver, activityLogger)
	boardService := service.NewBoardService(repos, resolver)
	shareService := service.NewShareService(repos, resolver)
	commentService := service.NewCommentService(repos, resolver)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	syncHandler := handler.NewSyncHandler(syncService, cfg.Sync.MaxBatchSize)
	boardHandler := handler.NewBoardHandler(boardService)
	shareHandler := handler.NewShareHandler(shareService)
	commentHandler := handler.NewCommentHandler(commentService)
	activityHandler := handler.NewActivityHandler(activityLogger)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			if deps.RedisClient != nil {
				rateLimiter := redis.NewRateLimiter(
					deps.RedisClient,
					cfg.Security.RateLimit.RequestsPerMinute,
					cfg.Security.RateLimit.Burst,
				)
				r.Use(customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit)
			} else {
				log.Warn().Msg("Redis disabled, rate limiting is off")
			}

			r.Get("/auth/me", authHandler.Me)

			r.Patch("/sync", syncHandler.Sync)

			r.Get("/workspaces", boardHandler.Overview)

			r.Route("/boards/{boardID}", func(r chi.Router) {
				r.Get("/", boardHandler.Get)
				r.Get("/shares", shareHandler.List)
				r.Post("/shares", shareHandler.Grant)
				r.Delete("/shares/{userID}", shareHandler.Revoke)
			})

			r.Route("/cards/{cardID}", func(r chi.Router) {
				r.Get("/comments", commentHandler.List)
				r.Post("/comments", commentHandler.Create)
				r.Get("/activity", activityHandler.ForCard)
			})

			r.Get("/lists/{listID}/activity", activityHandler.ForList)
			r.Delete("/comments/{commentID}", commentHandler.Delete)
		})
	})

	return r
}
