package application

import (
	"context"

	"github.com/paulvitic/cqrs-go/example/inventory/domain"
)

type CreateItemHandler struct {
	repo domain.Repository
}

func NewCreateItemHandler(repo domain.Repository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

func (h *CreateItemHandler) Handle(ctx context.Context, cmd domain.CreateItem) error {
	item, err := domain.NewItem(cmd.ID, cmd.Name, cmd.Quantity)
	if err != nil {
		return err
	}
	return h.repo.Save(ctx, item)
}

type UpdateItemHandler struct {
	repo domain.Repository
}

func NewUpdateItemHandler(repo domain.Repository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

func (h *UpdateItemHandler) Handle(ctx context.Context, cmd domain.UpdateItem) error {
	item, err := h.repo.Load(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if err := item.Change(cmd.Name, cmd.Quantity); err != nil {
		return err
	}
	return h.repo.Update(ctx, item)
}

type DeleteItemHandler struct {
	repo domain.Repository
}

func NewDeleteItemHandler(repo domain.Repository) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo}
}

// Handle returns the repository's *domain.ItemNotFoundError untouched.
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd domain.DeleteItem) error {
	return h.repo.Delete(ctx, cmd.ID)
}
