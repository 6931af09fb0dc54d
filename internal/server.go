package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"
	"google.golang.org/api/option"

	"github.com/mkovacic/fitlog/internal/auth"
	"github.com/mkovacic/fitlog/internal/config"
	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/internal/middleware"
	"github.com/mkovacic/fitlog/internal/misc"
	"github.com/mkovacic/fitlog/internal/profile"
	"github.com/mkovacic/fitlog/internal/progress"
	"github.com/mkovacic/fitlog/internal/telemetry/metrics"
	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
	"github.com/mkovacic/fitlog/internal/workouts"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config          *config.Config
	firestoreClient *firestore.Client
	store           docstore.Store

	redisClient  *redis.Client
	loginChecker auth.Checker
	authService  *auth.Service

	workoutsRepo *workouts.Repo
	progressRepo *progress.Repo
	profileRepo  *profile.Repo

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	var firestoreOpts []option.ClientOption
	if params.Config.FirestoreCredentialsFile != "" {
		firestoreOpts = append(firestoreOpts, option.WithCredentialsFile(params.Config.FirestoreCredentialsFile))
	}
	firestoreClient, err := firestore.NewClient(ctx, params.Config.FirestoreProjectID, firestoreOpts...)
	if err != nil {
		return nil, fmt.Errorf("new firestore client: %w", err)
	}
	store := docstore.NewFirestore(firestoreClient)

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitlog", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	sessionTTL := auth.DefaultTTL
	if params.Config.SessionTTLHours > 0 {
		sessionTTL = time.Duration(params.Config.SessionTTLHours) * time.Hour
	}
	authService := auth.NewService(store, sessionTTL, rdb)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	progressRepo := progress.NewRepo(store)

	return &Server{
		config:          params.Config,
		versionInfo:     params.VersionInfo,
		firestoreClient: firestoreClient,
		store:           store,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(rdb),

		workoutsRepo: workouts.NewRepo(store),
		progressRepo: progressRepo,
		profileRepo:  profile.NewRepo(store, progressRepo, params.Config.ProfileCacheExpireSeconds),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitlog-router"))

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	authRouter := r.PathPrefix("/a").Subrouter()
	authHandler := auth.NewHandler(s.authService)
	authHandler.SetupRoutes(authRouter)

	// rate limit register/login/logout to prevent abuse
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authRouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"auth",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	workoutsHandler := workouts.NewHandler(s.workoutsRepo, s.metricsManager)
	workoutsHandler.SetupRoutes(r)

	progressHandler := progress.NewHandler(s.progressRepo, s.profileRepo, s.metricsManager)
	progressHandler.SetupRoutes(r)

	profileHandler := profile.NewHandler(s.profileRepo)
	profileHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("fitlog service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	var shutdownErr error

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
			shutdownErr = multierr.Append(shutdownErr, err)
		}
	}

	if s.firestoreClient != nil {
		if err := s.firestoreClient.Close(); err != nil {
			log.Errorf("failed to close firestore client: %s", err)
			shutdownErr = multierr.Append(shutdownErr, err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	log.Warnln("metrics server shut down")

	return shutdownErr
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
