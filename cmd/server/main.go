package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/wanderplan/backend/internal/delivery/http"
	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/internal/repository/postgres"
	"github.com/wanderplan/backend/internal/repository/redisstore"
	"github.com/wanderplan/backend/internal/service"
	"github.com/wanderplan/backend/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := loadConfig()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Database connection; fall back to in-memory storage when unavailable
	var trips domain.TripRepository
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		zlog.Warn("could not connect to database, storing trips in memory", "error", err)
		if pool != nil {
			pool.Close()
		}
		trips = postgres.NewMemoryRepository()
	} else {
		defer pool.Close()
		zlog.Info("connected to PostgreSQL")
		trips = postgres.NewTripRepository(pool)
	}

	// Redis connection for share tokens; same fallback strategy
	var shares domain.ShareRepository
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Warn("could not connect to redis, storing share tokens in memory", "error", err)
		shares = redisstore.NewMemoryShareStore()
	} else {
		zlog.Info("connected to Redis")
		shares = redisstore.NewShareStore(redisClient)
	}

	// Dependency injection: provider clients behind rate limiters
	geocoder := service.NewRateLimitedGeocoder(
		service.NewOpenWeatherGeocoder(cfg.OpenWeatherAPIKey), cfg.WeatherRPS, cfg.WeatherBurst)
	forecasts := service.NewRateLimitedForecastClient(
		service.NewOpenWeatherClient(cfg.OpenWeatherAPIKey), cfg.WeatherRPS, cfg.WeatherBurst)
	generator := service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	// Dependency injection: pipelines and services
	weatherPipeline := service.NewWeatherPipeline(geocoder, forecasts, zlog)
	itineraryPipeline := service.NewItineraryPipeline(weatherPipeline, generator, trips, zlog)
	exportSvc := service.NewExportService(trips, shares)

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Wanderplan API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	handler := http.NewHandler(itineraryPipeline, weatherPipeline, exportSvc, trips, zlog)
	http.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		zlog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zlog.Error("server forced to shutdown", "error", err)
	}
	zlog.Info("server exited gracefully")
}

type Config struct {
	DatabaseURL       string
	RedisAddr         string
	OpenWeatherAPIKey string
	GeminiAPIKey      string
	GeminiModel       string
	WeatherRPS        float64
	WeatherBurst      int
	Port              string
	Env               string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", ""),
		WeatherRPS:        5,
		WeatherBurst:      10,
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
