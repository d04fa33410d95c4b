package api

import (
	"github.com/gin-gonic/gin"

	"grocery-share/internal/auth"
	"grocery-share/internal/config"
	"grocery-share/internal/database"
	"grocery-share/internal/directory"
	"grocery-share/internal/handlers"
	"grocery-share/internal/identity"
	"grocery-share/internal/items"
	"grocery-share/internal/logging"
	"grocery-share/internal/snapshot"
	"grocery-share/internal/transfer"
)

func SetupRouter(db *database.DB, cfg *config.Config, notifier *identity.Notifier, log logging.Logger) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	jwtManager := auth.NewJWTManager(cfg.JWT)

	// Storage components, one injected handle each
	accounts := identity.NewPostgresAccounts(db)
	dirStore := directory.NewPostgresStore(db)
	itemRepo := items.NewPostgresRepository(db)
	messageStore := transfer.NewPostgresStore(db)
	archive := snapshot.NewPostgresArchive(db)

	resolver := directory.NewResolver(dirStore, accounts)
	protocol := transfer.NewProtocol(messageStore, log)
	archiver := snapshot.NewArchiver(itemRepo, archive, log)

	authHandler := handlers.NewAuthHandler(accounts, dirStore, notifier, jwtManager, log)
	userHandler := handlers.NewUserHandler(accounts, resolver)
	itemHandler := handlers.NewItemHandler(itemRepo)
	transferHandler := handlers.NewTransferHandler(protocol, itemRepo)
	snapshotHandler := handlers.NewSnapshotHandler(archiver, log)

	// Public routes
	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(jwtManager))
	{
		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.GetCurrentUser)
			users.GET("/resolve", userHandler.ResolveUsers)
		}

		itemRoutes := protected.Group("/items")
		{
			itemRoutes.GET("", itemHandler.GetItems)
			itemRoutes.POST("", itemHandler.CreateItem)
			itemRoutes.GET("/:id", itemHandler.GetItem)
			itemRoutes.PUT("/:id", itemHandler.UpdateItem)
			itemRoutes.DELETE("/:id", itemHandler.DeleteItem)
		}

		messages := protected.Group("/messages")
		{
			messages.POST("", transferHandler.SendMessage)
			messages.POST("/batch", transferHandler.SendBatch)
			messages.GET("/pending", transferHandler.GetPendingMessages)
			messages.POST("/:id/accept", transferHandler.AcceptMessage)
			messages.POST("/:id/reject", transferHandler.RejectMessage)
		}

		protected.POST("/snapshots", snapshotHandler.CreateSnapshot)
	}

	return router
}
