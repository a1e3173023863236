package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodexpress-api/config"
	"foodexpress-api/logger"
	"foodexpress-api/middleware"
	"foodexpress-api/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logg := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	logg.Info("database connected and migrated")

	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	auth := middleware.NewAuth(cfg.JWTSecret, db)
	routes.Setup(r, db, auth, logg)

	logg.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
