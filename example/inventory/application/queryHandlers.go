package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	cqrs "github.com/paulvitic/cqrs-go"
	"github.com/paulvitic/cqrs-go/example/inventory/domain"
)

type GetItemByIDHandler struct {
	repo domain.Repository
}

func NewGetItemByIDHandler(repo domain.Repository) *GetItemByIDHandler {
	return &GetItemByIDHandler{repo: repo}
}

// Handle answers nil, not an error, for an unknown id.
func (h *GetItemByIDHandler) Handle(ctx context.Context, query domain.GetItemByID) (*domain.Item, error) {
	item, err := h.repo.Load(ctx, query.ID)
	var notFound *domain.ItemNotFoundError
	if errors.As(err, &notFound) {
		return nil, nil
	}
	return item, err
}

type ListItemsHandler struct {
	repo domain.Repository
}

func NewListItemsHandler(repo domain.Repository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

func (h *ListItemsHandler) Handle(ctx context.Context, query domain.ListItems) (cqrs.Page[domain.Item], error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		return cqrs.Page[domain.Item]{}, fmt.Errorf("%w: page size %d exceeds %d",
			domain.ErrInvalidQuery, pageSize, domain.MaxPageSize)
	}
	pageIndex := max(query.PageIndex, 0)
	if pageIndex > math.MaxInt/pageSize {
		return cqrs.Page[domain.Item]{}, fmt.Errorf("%w: page %d is out of range",
			domain.ErrInvalidQuery, pageIndex)
	}

	count, err := h.repo.Count(ctx)
	if err != nil {
		return cqrs.Page[domain.Item]{}, err
	}
	items, err := h.repo.LoadAll(ctx, pageIndex*pageSize, pageSize)
	if err != nil {
		return cqrs.Page[domain.Item]{}, err
	}
	return cqrs.NewPage(items, count, pageIndex, pageSize), nil
}
