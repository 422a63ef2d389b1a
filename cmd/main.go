package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-blog/internal/jwt"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/pictures"
	"github.com/sbilibin2017/gw-blog/internal/repositories"
	"github.com/sbilibin2017/gw-blog/internal/router"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/sbilibin2017/gw-blog/internal/validation"
	"github.com/sbilibin2017/gw-blog/internal/views"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config is the application configuration.
type config struct {
	AppHost   string
	AppPort   string
	LogLevel  string
	LogFile   string
	StaticDir string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	SessionSecretKey   string
	SessionCookieName  string
	SessionExp         time.Duration
	SessionRememberExp time.Duration
	SessionSecure      bool

	UploadMaxBytes     int64
	LoginRatePerSecond float64
	LoginRateBurst     int
}

// parseConfig loads environment variables from a file and returns the application,
// database, Redis, Kafka, logging and session configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var err error
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var v int
		if v, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return v
	}

	cfg := &config{
		// Application config
		AppHost:   getEnv("APP_HOST", "localhost"),
		AppPort:   getEnv("APP_PORT", "8080"),
		LogLevel:  getEnv("APP_LOG_LEVEL", "info"),
		LogFile:   getEnv("APP_LOG_FILE", ""),
		StaticDir: getEnv("APP_STATIC_DIR", "static"),

		// PostgreSQL config
		PGHost:         getEnv("POSTGRES_HOST", "localhost"),
		PGPort:         getInt("POSTGRES_PORT", "5432"),
		PGUser:         getEnv("POSTGRES_USER", "user"),
		PGPassword:     getEnv("POSTGRES_PASSWORD", "password"),
		PGDB:           getEnv("POSTGRES_DB", "database"),
		PGMaxOpenConns: getInt("POSTGRES_MAX_OPEN_CONNS", "16"),
		PGMaxIdleConns: getInt("POSTGRES_MAX_IDLE_CONNS", "8"),

		// Redis config
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getInt("REDIS_PORT", "6379"),
		RedisDB:           getInt("REDIS_DB", "0"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisPoolSize:     getInt("REDIS_POOL_SIZE", "10"),
		RedisMinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", "2"),

		// Kafka config
		KafkaTopic: getEnv("KAFKA_TOPIC", "blog-events"),

		// Session config
		SessionSecretKey:   getEnv("SESSION_SECRET_KEY", "my_super_secret_key"),
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", jwt.DefaultCookieName),
		SessionExp:         time.Duration(getInt("SESSION_EXP_SECOND", "86400")) * time.Second,
		SessionRememberExp: time.Duration(getInt("SESSION_REMEMBER_EXP_SECOND", "31536000")) * time.Second,

		// Limits
		UploadMaxBytes: int64(getInt("UPLOAD_MAX_BYTES", "4194304")),
		LoginRateBurst: getInt("LOGIN_RATE_BURST", "5"),
	}
	if err != nil {
		return nil, err
	}

	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	if cfg.SessionSecure, err = strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("SESSION_COOKIE_SECURE: %w", err)
	}
	if cfg.LoginRatePerSecond, err = strconv.ParseFloat(getEnv("LOGIN_RATE_PER_SECOND", "0.2"), 64); err != nil {
		return nil, fmt.Errorf("LOGIN_RATE_PER_SECOND: %w", err)
	}

	return cfg, nil
}

// run initializes the logger, database, Redis, Kafka, picture storage and HTTP server.
// It sets up routes and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for audit events, disabled without brokers
	var events *services.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer writer.Close()
		events = services.NewEventPublisher(writer)
		logger.Log.Infof("Publishing events to Kafka topic %s", cfg.KafkaTopic)
	} else {
		events = services.NewEventPublisher(nil)
		logger.Log.Info("Kafka brokers not configured, events disabled")
	}

	// Picture storage
	pictureStore := pictures.New(filepath.Join(cfg.StaticDir, "pics"), pictures.DefaultSize)
	if err := pictureStore.EnsureDefault(); err != nil {
		return fmt.Errorf("failed to prepare picture storage: %w", err)
	}

	// Initialize session tokens
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.SessionSecretKey),
		jwt.WithExpiration(cfg.SessionExp),
		jwt.WithRememberExpiration(cfg.SessionRememberExp),
		jwt.WithCookieName(cfg.SessionCookieName),
		jwt.WithSecureCookie(cfg.SessionSecure),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	postReadRepo := repositories.NewPostReadRepository(db, middlewares.GetTxFromContext)
	postWriteRepo := repositories.NewPostWriteRepository(db, middlewares.GetTxFromContext)
	revocationRepo := repositories.NewSessionRevocationRepository(rdb)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, events)
	sessionService := services.NewSessionService(tokens, revocationRepo, userReadRepo)
	postService := services.NewPostService(postReadRepo, postWriteRepo, userReadRepo, events)
	profileService := services.NewProfileService(userReadRepo, userWriteRepo, pictureStore, middlewares.TxHooks{}, events)

	// Views
	view, err := views.New()
	if err != nil {
		return err
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.PGDB),
	)

	// Setup router
	r := router.New(router.Config{
		DB:             db,
		Sessions:       sessionService,
		Auth:           authService,
		Posts:          postService,
		Profiles:       profileService,
		Validator:      validation.New(),
		View:           view,
		Metrics:        middlewares.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		LoginLimiter:   middlewares.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst),
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.UploadMaxBytes,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
