package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tradelane/storefront/app"
	"github.com/tradelane/storefront/app/api"
	"github.com/tradelane/storefront/app/categories"
	"github.com/tradelane/storefront/app/database"
	"github.com/tradelane/storefront/internal/cache"
	"github.com/tradelane/storefront/internal/logger"
	"github.com/tradelane/storefront/internal/sanitizer"
	"github.com/tradelane/storefront/internal/security"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	appLogger := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{
		"service": "storefront-api",
		"env":     cfg.Env,
	})

	HTMLSanitizer := sanitizer.NewHTMLStripper()
	treeCache := cache.New[[]categories.TreeNode](cfg.Cache.Backend, cfg.Cache.RedisOptions())

	tokenMaker, err := security.NewPasetoMaker(cfg.AdminTokenKey)
	if err != nil {
		log.Fatal("cannot create token maker:", err)
	}

	catDeps := categories.Dependencies{
		DB:        db,
		Logger:    appLogger,
		Sanitizer: HTMLSanitizer,
		TreeCache: treeCache,
	}

	r := gin.Default()
	r.Use(api.CorsMiddleware())

	apiV1 := r.Group("/api/v1")
	apiV1.GET("/healthz", api.HealthCheck)

	categories.Init(apiV1, catDeps)

	adminGroup := apiV1.Group("/")
	adminGroup.Use(api.AuthMiddleware(tokenMaker), api.RequireScope(security.TokenScopeManage))
	categories.InitWithAuth(adminGroup, catDeps)

	appLogger.Info("starting storefront API server", map[string]interface{}{
		"host": cfg.AppHost,
		"port": cfg.AppPort,
	})
	if err := r.Run(fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
