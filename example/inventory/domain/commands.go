package domain

import (
	"github.com/google/uuid"

	cqrs "github.com/paulvitic/cqrs-go"
)

// CreateItem adds an item. ID is optional.
type CreateItem struct {
	cqrs.CommandBase
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}

type UpdateItem struct {
	cqrs.CommandBase
	ID       uuid.UUID `json:"-"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}

type DeleteItem struct {
	cqrs.CommandBase
	ID uuid.UUID
}
