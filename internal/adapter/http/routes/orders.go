package routes

import (
	"atelier_lag/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		// Checkbox clicks of the production board.
		orders.PUT("/statut", orderHandler.UpdateStatus)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id", orderHandler.UpdateOrder)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
		orders.GET("/:id/stages", orderHandler.GetBoard)
		orders.POST("/:id/duplicate", orderHandler.DuplicateOrder)
	}
}
