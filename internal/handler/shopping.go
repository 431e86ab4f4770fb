package handler

import (
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/service"
	"github.com/labstack/echo/v4"
)

// ShoppingHandler serves /shoppinglist.
type ShoppingHandler struct {
	Handler
	shoppingService *service.ShoppingService
}

func NewShoppingHandler(s *server.Server, shoppingService *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{
		Handler:         NewHandler(s),
		shoppingService: shoppingService,
	}
}

func (h *ShoppingHandler) ListItems(c echo.Context, _ *model.ListShoppingItemsPayload) ([]model.ShoppingItem, error) {
	return h.shoppingService.ListItems(c.Request().Context())
}

func (h *ShoppingHandler) CreateItem(c echo.Context, payload *model.CreateShoppingItemPayload) (*model.ShoppingItem, error) {
	return h.shoppingService.CreateItem(c.Request().Context(), payload)
}

func (h *ShoppingHandler) UpdateItem(c echo.Context, payload *model.UpdateShoppingItemPayload) (*model.ShoppingItem, error) {
	return h.shoppingService.UpdateItem(c.Request().Context(), payload)
}

func (h *ShoppingHandler) DeleteItem(c echo.Context, payload *model.DeleteShoppingItemPayload) (*model.ShoppingItem, error) {
	return h.shoppingService.DeleteItem(c.Request().Context(), payload)
}
