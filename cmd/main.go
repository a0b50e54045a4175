package main

import (
	"context"
	"fmt"
	"time"

	_ "github.com/franciscosanchezn/gin-recipe-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-recipe-api/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-api/internal/config"
	"github.com/franciscosanchezn/gin-recipe-api/internal/controllers"
	"github.com/franciscosanchezn/gin-recipe-api/internal/database"
	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/router"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/franciscosanchezn/gin-recipe-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title Recipe API
// @version 1.0
// @description Bilingual (English and Arabic) recipe catalog API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	// Initialize database connection
	db := setupDatabase(configuration)

	ctx := context.Background()
	store := setupStorage(ctx, configuration)

	// Initialize services
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)
	tagService := services.NewTagService(db)
	ingredientService := services.NewIngredientService(db)
	recipeService := services.NewRecipeService(db, tagService, ingredientService, store)

	_, err := clientService.EnsurePublicClient(ctx, configuration.OAuthClientID, "Recipe Web")
	checkPanicErr(err)

	oauthService := auth.NewOAuthService(db, configuration.JWTSecret, userService)
	if err := oauthService.PurgeExpiredTokens(ctx); err != nil {
		log.WithError(err).Warn("Could not purge expired tokens")
	}

	// Initialize Gin router
	r := router.SetupRouter(router.Dependencies{
		JWTSecret:   []byte(configuration.JWTSecret),
		CORSOrigins: configuration.CORSOrigins,
		OAuth:       oauthService,
		Users:       controllers.NewUserController(userService),
		Recipes:     controllers.NewRecipeController(recipeService, store, int64(configuration.MaxUploadMB)<<20),
		Tags:        controllers.NewTagController(tagService),
		Ingredients: controllers.NewIngredientController(ingredientService),
		Clients:     controllers.NewClientController(clientService),
		RateLimiter: setupRateLimiter(ctx, configuration),
		MediaRoot:   mediaRoot(configuration),
		MediaURL:    configuration.MediaURL,
	})

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	checkPanicErr(r.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
		gin.SetMode(gin.ReleaseMode)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)

	if level, err := log.ParseLevel(conf.LogLevel); err == nil {
		log.SetLevel(level)
		services.SetLogLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, keeping %s", conf.LogLevel, log.GetLevel())
	}
	return conf
}

// setupDatabase opens the configured database and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database())
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupStorage selects where uploaded recipe images are written
func setupStorage(ctx context.Context, conf *config.Config) storage.Storage {
	if conf.StorageBackend == config.StorageS3 {
		store, err := storage.NewS3StorageFromEnv(ctx, conf.AWSRegion, conf.S3Bucket, conf.S3PublicURL)
		checkPanicErr(err)
		log.Infof("Storing images in S3 bucket %s", conf.S3Bucket)
		return store
	}
	log.Infof("Storing images under %s", conf.MediaRoot)
	return storage.NewLocalStorage(conf.MediaRoot, conf.MediaURL)
}

// setupRateLimiter connects to Redis when REDIS_URL is set; requests are not limited otherwise
func setupRateLimiter(ctx context.Context, conf *config.Config) *middleware.RateLimiter {
	if conf.RedisURL == "" {
		log.Info("REDIS_URL not set, rate limiting disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := database.NewRedisClient(ctx, conf.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, rate limiting disabled")
		return nil
	}
	return middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Limit:  conf.RateLimit,
		Window: conf.RateLimitWindow,
	})
}

func mediaRoot(conf *config.Config) string {
	if conf.StorageBackend != config.StorageLocal {
		return ""
	}
	return conf.MediaRoot
}
