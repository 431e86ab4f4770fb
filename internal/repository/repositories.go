package repository

import (
	"github.com/deppfellow/pantry/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Inventory *InventoryRepository
	Shopping  *ShoppingRepository
}

// NewRepositories constructs the repository container on top of s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Inventory: NewInventoryRepository(s),
		Shopping:  NewShoppingRepository(s),
	}
}
