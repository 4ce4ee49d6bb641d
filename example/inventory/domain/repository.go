package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores items. Save returns an *ItemExistsError for a taken id;
// Update, Load and Delete return an *ItemNotFoundError for an unknown id.
type Repository interface {
	// Save persists a new item
	Save(ctx context.Context, item *Item) error
	// Update replaces a stored item
	Update(ctx context.Context, item *Item) error
	Load(ctx context.Context, id uuid.UUID) (*Item, error)
	// LoadAll returns at most limit items ordered by name, skipping offset
	LoadAll(ctx context.Context, offset, limit int) ([]Item, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
