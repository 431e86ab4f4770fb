package handler

import (
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/service"
	"github.com/labstack/echo/v4"
)

// InventoryHandler serves /inventorylist.
type InventoryHandler struct {
	Handler
	inventoryService *service.InventoryService
}

func NewInventoryHandler(s *server.Server, inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		Handler:          NewHandler(s),
		inventoryService: inventoryService,
	}
}

func (h *InventoryHandler) ListItems(c echo.Context, _ *model.ListInventoryItemsPayload) ([]model.InventoryItem, error) {
	return h.inventoryService.ListItems(c.Request().Context())
}

func (h *InventoryHandler) CreateItem(c echo.Context, payload *model.CreateInventoryItemPayload) (*model.InventoryItem, error) {
	return h.inventoryService.CreateItem(c.Request().Context(), payload)
}

func (h *InventoryHandler) UpdateItem(c echo.Context, payload *model.UpdateInventoryItemPayload) (*model.InventoryItem, error) {
	return h.inventoryService.UpdateItem(c.Request().Context(), payload)
}

func (h *InventoryHandler) DeleteItem(c echo.Context, payload *model.DeleteInventoryItemPayload) (*model.InventoryItem, error) {
	return h.inventoryService.DeleteItem(c.Request().Context(), payload)
}
