package service

import (
	"github.com/deppfellow/pantry/internal/repository"
	"github.com/deppfellow/pantry/internal/server"
)

type Services struct {
	Inventory *InventoryService
	Shopping  *ShoppingService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Inventory: NewInventoryService(s, repos.Inventory),
		Shopping:  NewShoppingService(s, repos.Shopping),
	}, nil
}
