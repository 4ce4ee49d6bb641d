package domain

import (
	"github.com/google/uuid"

	cqrs "github.com/paulvitic/cqrs-go"
)

// GetItemByID answers nil when no item has the id.
type GetItemByID struct {
	cqrs.QueryBase[*Item]
	ID uuid.UUID
}

// ListItems pages through all items ordered by name. PageSize is capped at
// MaxPageSize.
type ListItems struct {
	cqrs.QueryBase[cqrs.Page[Item]]
	PageIndex int
	PageSize  int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
