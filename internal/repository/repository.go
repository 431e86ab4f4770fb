// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Writes use RETURNING so a missing row surfaces as sql.ErrNoRows and a
// duplicate key as the driver's constraint error or ErrAlreadyExists; all
// are returned wrapped for the service layer to classify.
package repository

import "github.com/pkg/errors"

// ErrAlreadyExists is returned when a create is refused because the item
// name is already taken.
var ErrAlreadyExists = errors.New("item already exists")
