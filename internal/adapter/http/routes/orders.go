package routes

import (
	"pesapal_gateway/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
	PathIPN    = "/ipn"
	PathPing   = "/ping"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.SubmitOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:order_tracking_id", orderHandler.GetOrder)
		orders.GET("/:order_tracking_id/status", orderHandler.GetTransactionStatus)
	}
}

func addIPNRoutes(rg *gin.RouterGroup, ipnHandler *handlers.IPNHandler) {
	ipn := rg.Group(PathIPN)
	{
		ipn.POST("", ipnHandler.RegisterIPN)
		// Pesapal calls back with GET (the registered ipn_notification_type);
		// POST is accepted for manual replays.
		ipn.GET("/callback", ipnHandler.Callback)
		ipn.POST("/callback", ipnHandler.Callback)
	}
}
