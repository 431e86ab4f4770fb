// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// Services never pre-check existence. Each write is decided by the
// repository's statement and its outcome (repository.ErrAlreadyExists, a
// constraint violation or sql.ErrNoRows) is translated into the matching
// HTTP error.
package service

import (
	"database/sql"
	"fmt"

	"github.com/deppfellow/pantry/internal/errs"
	"github.com/deppfellow/pantry/internal/repository"
	"github.com/deppfellow/pantry/internal/sqlerr"
	"github.com/pkg/errors"
)

// Labels for metrics.Metrics.ItemChangesTotal.
const (
	listInventory = "inventory"
	listShopping  = "shopping"

	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
)

func alreadyExists(itemName string) *errs.HTTPError {
	return errs.NewConflictError(fmt.Sprintf("'%s' already exists.", itemName), true, nil)
}

func itemNotFound(itemName string) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("'%s' item not found.", itemName), true, nil)
}

// classify maps the errors a write is expected to produce; anything else is
// returned unchanged for the global error handler.
func classify(err error, itemName string) error {
	switch {
	case errors.Is(err, repository.ErrAlreadyExists), sqlerr.IsUniqueViolation(err):
		return alreadyExists(itemName)
	case errors.Is(err, sql.ErrNoRows):
		return itemNotFound(itemName)
	default:
		return err
	}
}
