package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/internal/store"
	"github.com/dmitrymomot/foodorder/modules/account"
	cartmod "github.com/dmitrymomot/foodorder/modules/cart"
	catalogmod "github.com/dmitrymomot/foodorder/modules/catalog"
	"github.com/dmitrymomot/foodorder/modules/oauth"
	ordermod "github.com/dmitrymomot/foodorder/modules/order"
	reviewmod "github.com/dmitrymomot/foodorder/modules/review"
	"github.com/dmitrymomot/foodorder/pkg/clientip"
	"github.com/dmitrymomot/foodorder/pkg/config"
	"github.com/dmitrymomot/foodorder/pkg/email"
	"github.com/dmitrymomot/foodorder/pkg/file"
	"github.com/dmitrymomot/foodorder/pkg/hasher"
	"github.com/dmitrymomot/foodorder/pkg/httpserver"
	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/metrics"
	"github.com/dmitrymomot/foodorder/pkg/mongo"
	"github.com/dmitrymomot/foodorder/pkg/ratelimiter"
	"github.com/dmitrymomot/foodorder/pkg/requestid"
	"github.com/dmitrymomot/foodorder/svc/auth"
	"github.com/dmitrymomot/foodorder/svc/cart"
	"github.com/dmitrymomot/foodorder/svc/catalog"
	"github.com/dmitrymomot/foodorder/svc/order"
	"github.com/dmitrymomot/foodorder/svc/review"
)

type appConfig struct {
	Env         string        `env:"APP_ENV" envDefault:"development"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"foodorder"`
	HMACSecret  string        `env:"HMAC_SECRET,required"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
	CookieTTL   time.Duration `env:"SESSION_COOKIE_TTL" envDefault:"720h"`
	PageSize    int           `env:"CATALOG_PAGE_SIZE" envDefault:"10"`

	Mongo  mongo.Config
	HTTP   httpserver.Config
	Email  email.Config
	JWT    jwt.Config
	Auth   auth.Config
	Google auth.GoogleOAuthConfig
	Files  file.Config
	Limit  ratelimiter.Config
}

func (c appConfig) production() bool {
	return c.Env == logger.EnvProduction || c.Env == "prod"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	client, err := mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(closeCtx); err != nil {
			log.Warn("failed to disconnect from mongodb", logger.Error(err))
		}
	}()

	db := store.New(client.Database(cfg.Mongo.Database), store.WithLogger(log))
	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	h, err := hasher.New(cfg.HMACSecret, hasher.WithCost(cfg.BcryptCost))
	if err != nil {
		return err
	}
	tokens, err := jwt.New(cfg.JWT)
	if err != nil {
		return err
	}
	mailer, err := email.New(cfg.Email)
	if err != nil {
		return err
	}
	files, err := file.NewStorage(ctx, cfg.Files)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.ServiceName, registry)

	authSvc := auth.NewService(cfg.Auth, db, h, tokens, mailer,
		auth.WithLogger(log),
		auth.WithEventRecorder(m.RecordAuthEvent),
	)
	guard := auth.NewGuard(tokens, db, auth.WithGuardLogger(log))

	catalogSvc := catalog.NewService(db, files,
		catalog.WithLogger(log),
		catalog.WithPageSize(cfg.PageSize),
		catalog.WithMaxImageSize(cfg.Files.MaxSize),
	)
	cartSvc := cart.NewService(db, catalogSvc, cart.WithLogger(log))
	orderSvc := order.NewService(db, cartSvc, catalogSvc, order.WithLogger(log))
	reviewSvc := review.NewService(db, catalogSvc, review.WithLogger(log))

	var limiter *ratelimiter.Limiter
	if cfg.Limit.Enabled {
		if limiter, err = ratelimiter.New(cfg.Limit); err != nil {
			return err
		}
		defer limiter.Close()
	}

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{Development: !cfg.production()})

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		logger.Middleware(log),
		m.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestid.Header},
			ExposedHeaders:   []string{requestid.Header},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, 3*time.Second,
		httpserver.Check{Name: "mongodb", Fn: mongo.Healthcheck(client)},
	))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	if local, ok := files.(*file.LocalStorage); ok {
		prefix := "/" + strings.Trim(cfg.Files.LocalBaseURL, "/")
		r.Handle(prefix+"/*", crossOrigin(http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir())))))
	}

	catalogModule := catalogmod.New(catalogSvc, guard, cfg.Files.MaxSize, errorHandler)

	r.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(rateLimit(limiter, log))
		}

		r.Mount("/users", account.New(account.Config{
			CookieTTL:    cfg.CookieTTL,
			SecureCookie: cfg.production(),
		}, authSvc, guard, errorHandler).Handle())

		if cfg.Google.Enabled() {
			bridge := auth.NewOAuthBridge(authSvc, auth.NewGoogleAdapter(cfg.Google),
				auth.WithVerifiedOnly(cfg.Google.VerifiedOnly),
			)
			r.Mount("/auth/google", oauth.New(bridge, oauth.WithLogger(log), oauth.WithErrorHandler(errorHandler)).Handle())
		} else {
			log.Info("google sign-in disabled, client credentials not configured")
		}

		r.Mount("/foods", catalogModule.HandleFoods())
		r.Mount("/categories", catalogModule.HandleCategories())
		r.Mount("/cart", cartmod.New(cartSvc, guard.Protect, errorHandler).Handle())
		r.Mount("/orders", ordermod.New(orderSvc, guard, errorHandler).Handle())
		r.Mount("/reviews", reviewmod.New(reviewSvc, guard, errorHandler).Handle())
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func rateLimit(l *ratelimiter.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return ratelimiter.Middleware(l,
		func(r *http.Request) string { return clientip.FromContext(r.Context()) },
		ratelimiter.WithDenyHandler(func(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
			resp := handler.JSONError(http.StatusTooManyRequests, &handler.ErrorDetail{
				Code:    handler.ErrTooManyRequests.Key,
				Message: "Too many requests from this IP, please try again later",
			})
			if err := resp.Render(w, r); err != nil {
				log.ErrorContext(r.Context(), "failed to render rate limit response", logger.Error(err))
			}
		}),
		ratelimiter.WithErrorHook(func(r *http.Request, err error) {
			log.WarnContext(r.Context(), "rate limiter unavailable", logger.Error(err))
		}),
	)
}

// crossOrigin lets the frontends embed uploaded images.
func crossOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
		next.ServeHTTP(w, r)
	})
}
