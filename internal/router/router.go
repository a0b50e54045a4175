// Package router wires controllers and middleware into the gin engine.
package router

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-recipe-api/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-api/internal/controllers"
	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators the routes are served by
type Dependencies struct {
	JWTSecret   []byte
	CORSOrigins []string

	OAuth       *auth.OAuthService
	Users       *controllers.UserController
	Recipes     controllers.RecipeController
	Tags        *controllers.AttributeController[models.Tag, *models.Tag]
	Ingredients *controllers.AttributeController[models.Ingredient, *models.Ingredient]
	Clients     *controllers.ClientController

	// RateLimiter is optional; requests are not limited when nil
	RateLimiter *middleware.RateLimiter

	// MediaRoot and MediaURL serve locally stored images; empty MediaRoot disables the route
	MediaRoot string
	MediaURL  string
}

// SetupRouter initializes the Gin router and sets up the routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	setupRoutes(router, deps)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Not found."))
	})
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "Accept-Language")
	cfg.ExposeHeaders = []string{"Content-Language", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func setupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", healthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.MediaRoot != "" {
		router.Static(deps.MediaURL, deps.MediaRoot)
	}

	limit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Middleware()
	}
	authenticated := middleware.OAuth2Auth(deps.JWTSecret)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Locale())
	{
		user := v1.Group("/user")
		{
			user.POST("/create", limit, deps.Users.CreateUser)
			user.POST("/token", limit, deps.OAuth.HandleToken)

			me := user.Group("/me", authenticated, limit)
			me.GET("", deps.Users.Me)
			me.PUT("", deps.Users.UpdateMe)
			me.PATCH("", deps.Users.UpdateMe)
		}

		recipe := v1.Group("/recipe", authenticated, limit)
		{
			recipe.GET("/recipes", deps.Recipes.ListRecipes)
			recipe.POST("/recipes", deps.Recipes.CreateRecipe)
			recipe.GET("/recipes/:id", deps.Recipes.GetRecipe)
			recipe.PUT("/recipes/:id", deps.Recipes.UpdateRecipe)
			recipe.PATCH("/recipes/:id", deps.Recipes.UpdateRecipe)
			recipe.DELETE("/recipes/:id", deps.Recipes.DeleteRecipe)
			recipe.POST("/recipes/:id/upload-image", deps.Recipes.UploadImage)

			recipe.GET("/tags", deps.Tags.List)
			recipe.PUT("/tags/:id", deps.Tags.Update)
			recipe.PATCH("/tags/:id", deps.Tags.Update)
			recipe.DELETE("/tags/:id", deps.Tags.Delete)

			recipe.GET("/ingredients", deps.Ingredients.List)
			recipe.PUT("/ingredients/:id", deps.Ingredients.Update)
			recipe.PATCH("/ingredients/:id", deps.Ingredients.Update)
			recipe.DELETE("/ingredients/:id", deps.Ingredients.Delete)
		}

		admin := v1.Group("/admin", authenticated, middleware.RequireStaff(), limit)
		{
			admin.POST("/clients", deps.Clients.CreateClient)
			admin.GET("/clients", deps.Clients.ListClients)
			admin.DELETE("/clients/:id", deps.Clients.DeleteClient)
		}
	}
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-recipe-api",
	})
}
