package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodexpress-api/handlers"
	"foodexpress-api/middleware"
)

// Setup wires every endpoint. Reads are public; mutations go through the
// auth chain, then through the per-resource policy gate.
func Setup(r *gin.Engine, db *gorm.DB, auth *middleware.Auth, log *slog.Logger) {
	userHandler := handlers.NewUserHandler(db, auth, log)
	restaurantHandler := handlers.NewRestaurantHandler(db, log)
	menuHandler := handlers.NewMenuHandler(db, log)

	// ── Users ──────────────────────────────────────────────────────
	users := r.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)

		users.GET("", auth.RequireAuth(), middleware.RequireAdmin(), userHandler.List)
		users.GET("/:id", auth.RequireAuth(), middleware.RequireOwnerOrAdmin(), userHandler.Get)
		users.PUT("/:id", auth.RequireAuth(), middleware.RequireOwnerOrAdmin(), userHandler.Update)
		users.DELETE("/:id", auth.RequireAuth(), middleware.RequireOwnerOrAdmin(), userHandler.Delete)
	}

	// ── Restaurants ────────────────────────────────────────────────
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("", restaurantHandler.List)
		restaurants.GET("/:id", restaurantHandler.Get)

		restaurants.POST("", auth.RequireAuth(), middleware.RequireAdmin(), restaurantHandler.Create)
		restaurants.PUT("/:id", auth.RequireAuth(), middleware.RequireAdmin(), restaurantHandler.Update)
		restaurants.DELETE("/:id", auth.RequireAuth(), middleware.RequireAdmin(), restaurantHandler.Delete)
	}

	// ── Menus ──────────────────────────────────────────────────────
	menus := r.Group("/menus")
	{
		menus.GET("", menuHandler.List)
		menus.GET("/:id", menuHandler.Get)
		menus.GET("/restaurant/:restaurantId", menuHandler.ListByRestaurant)

		menus.POST("", auth.RequireAuth(), middleware.RequireAdmin(), menuHandler.Create)
		menus.PUT("/:id", auth.RequireAuth(), middleware.RequireAdmin(), menuHandler.Update)
		menus.DELETE("/:id", auth.RequireAuth(), middleware.RequireAdmin(), menuHandler.Delete)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "FoodExpress API",
		})
	})
}
