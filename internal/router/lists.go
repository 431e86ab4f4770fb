package router

import (
	"net/http"

	"github.com/deppfellow/pantry/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerListRoutes registers the inventory and shopping list resources.
// Every verb answers 200 with {"data": ...} on success.
func registerListRoutes(r *echo.Echo, h *handler.Handlers) {
	inventory := r.Group("/inventorylist")
	inventory.GET("", handler.HandleData(h.Inventory.Handler, h.Inventory.ListItems, http.StatusOK))
	inventory.POST("", handler.HandleData(h.Inventory.Handler, h.Inventory.CreateItem, http.StatusOK))
	inventory.PATCH("", handler.HandleData(h.Inventory.Handler, h.Inventory.UpdateItem, http.StatusOK))
	inventory.DELETE("", handler.HandleData(h.Inventory.Handler, h.Inventory.DeleteItem, http.StatusOK))

	shopping := r.Group("/shoppinglist")
	shopping.GET("", handler.HandleData(h.Shopping.Handler, h.Shopping.ListItems, http.StatusOK))
	shopping.POST("", handler.HandleData(h.Shopping.Handler, h.Shopping.CreateItem, http.StatusOK))
	shopping.PATCH("", handler.HandleData(h.Shopping.Handler, h.Shopping.UpdateItem, http.StatusOK))
	shopping.DELETE("", handler.HandleData(h.Shopping.Handler, h.Shopping.DeleteItem, http.StatusOK))
}
