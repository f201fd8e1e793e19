package routes

import (
	"context"
	"log"
	"strconv"

	_ "pesapal_gateway/docs" // This will be auto-generated
	"pesapal_gateway/internal/adapter/http/handlers"
	"pesapal_gateway/internal/app"
	"pesapal_gateway/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to wire the application: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Failed to close connections: %v", err)
		}
	}()

	router := NewRouter(a)
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Printf("Failed to startup the application: %v", err)
	}
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	orderHandler := handlers.NewOrderHandler(a.Orders)
	ipnHandler := handlers.NewIPNHandler(a.Notifications)

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, orderHandler)
	addIPNRoutes(v1, ipnHandler)

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
