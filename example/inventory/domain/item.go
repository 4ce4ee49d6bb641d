package domain

import (
	"strings"

	"github.com/google/uuid"
)

type Item struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}

// NewItem validates name and quantity. A nil id is replaced by a new one.
func NewItem(id uuid.UUID, name string, quantity int) (*Item, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	item := &Item{ID: id}
	if err := item.Change(name, quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// Change replaces name and quantity, leaving the item untouched when either
// is invalid.
func (i *Item) Change(name string, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	i.Name = name
	i.Quantity = quantity
	return nil
}
