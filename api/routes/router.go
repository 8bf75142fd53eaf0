package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/transportly/transportly-backend/api/controllers"
	"github.com/transportly/transportly-backend/api/middleware"
	"github.com/transportly/transportly-backend/internal/auth"
	"github.com/transportly/transportly-backend/internal/files"
	"github.com/transportly/transportly-backend/internal/rents"
	"github.com/transportly/transportly-backend/internal/transports"
	"github.com/transportly/transportly-backend/internal/users"
	"github.com/transportly/transportly-backend/pkg/auth/session"
	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/enums"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/metrics"
)

// Deps bundles everything the route table needs. Controllers guard their
// own nil services, so a partially wired Deps still yields a serving router.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DBPinger    pinger
	RedisClient redisStore
	BlobStore   pinger

	SessionManager session.AccessSessionChecker

	AuthService      auth.Service
	UserService      users.Service
	FileService      files.Service
	TransportService transports.Service
	RentService      rents.Service

	MetricsHandler http.Handler
}

type pinger interface {
	Ping(ctx context.Context) error
}

type redisStore interface {
	pinger
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if origins := cfg.App.AllowedOrigins(); len(origins) > 0 {
		r.Use(middleware.CORS(origins))
	}

	signinPolicy := middleware.NewAuthRateLimitPolicy(
		"signin",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisClient, deps.BlobStore))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, deps.RedisClient, logg)).
			Post("/signup", controllers.AuthSignup(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(signinPolicy, deps.RedisClient, logg)).
			Post("/signin", controllers.AuthSignin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/transports", func(r chi.Router) {
		r.Get("/", controllers.TransportList(deps.TransportService, logg))
		r.Get("/{transportId}", controllers.TransportGet(deps.TransportService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))
			r.Post("/", controllers.TransportCreate(deps.TransportService, logg))
			r.Put("/{transportId}", controllers.TransportUpdate(deps.TransportService, logg))
			r.Delete("/{transportId}", controllers.TransportDelete(deps.TransportService, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", controllers.UserMe(deps.UserService, logg))
			r.Put("/", controllers.UserUpdate(deps.UserService, logg))
			r.Put("/password", controllers.UserChangePassword(deps.UserService, logg))
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/", controllers.FileUpload(deps.FileService, cfg.Media, logg))
			r.Delete("/{fileId}", controllers.FileDelete(deps.FileService, logg))
		})

		r.Route("/rent", func(r chi.Router) {
			r.Post("/", controllers.RentCreate(deps.RentService, logg))
			r.Get("/", controllers.RentList(deps.RentService, logg))
			// GET {id} is a transport id (active rent lookup), PUT {id} a
			// rent id. The public API shapes both under the same segment.
			r.Get("/{id}", controllers.RentActive(deps.RentService, logg))
			r.Put("/{id}", controllers.RentUpdate(deps.RentService, logg))
		})
	})

	return r
}
