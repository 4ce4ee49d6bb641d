package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidItem  = errors.New("invalid item")
	ErrInvalidQuery = errors.New("invalid query")
)

type ItemNotFoundError struct {
	ID uuid.UUID
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ID)
}

type ItemExistsError struct {
	ID uuid.UUID
}

func (e *ItemExistsError) Error() string {
	return fmt.Sprintf("item %s already exists", e.ID)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidItem, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidItem
}
