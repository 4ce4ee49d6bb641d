package adapter

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	cqrs "github.com/paulvitic/cqrs-go"
	"github.com/paulvitic/cqrs-go/example/inventory/domain"
	cqrshttp "github.com/paulvitic/cqrs-go/http"
)

// ItemEndpoints exposes the inventory buses under /items.
func ItemEndpoints(commands *cqrs.CommandBus, queries *cqrs.QueryBus, opts ...cqrshttp.EndpointOption) []cqrshttp.Endpoint {
	opts = append([]cqrshttp.EndpointOption{cqrshttp.WithErrorMapper(itemErrorStatus)}, opts...)
	with := func(extra ...cqrshttp.EndpointOption) []cqrshttp.EndpointOption {
		return append(extra, opts...)
	}

	return []cqrshttp.Endpoint{
		cqrshttp.CommandRoute[domain.CreateItem](commands, "/items", createItem, opts...),
		cqrshttp.CommandRoute[domain.UpdateItem](commands, "/items/{id}", updateItem,
			with(cqrshttp.Methods(http.MethodPut))...),
		cqrshttp.CommandRoute[domain.DeleteItem](commands, "/items/{id}", deleteItem,
			with(cqrshttp.Methods(http.MethodDelete))...),
		cqrshttp.QueryRoute[domain.GetItemByID, *domain.Item](queries, "/items/{id}", getItemByID,
			with(cqrshttp.EmptyStatus(http.StatusNotFound))...),
		cqrshttp.QueryRoute[domain.ListItems, cqrs.Page[domain.Item]](queries, "/items", listItems, opts...),
	}
}

func itemErrorStatus(err error) int {
	var notFound *domain.ItemNotFoundError
	var exists *domain.ItemExistsError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &exists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidItem), errors.Is(err, domain.ErrInvalidQuery):
		return http.StatusBadRequest
	}
	return 0
}

func itemID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(cqrshttp.PathVar(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid item id: %w", err)
	}
	return id, nil
}

func createItem(r *http.Request) (domain.CreateItem, error) {
	return cqrshttp.DecodeJSON[domain.CreateItem](r)
}

func updateItem(r *http.Request) (domain.UpdateItem, error) {
	id, err := itemID(r)
	if err != nil {
		return domain.UpdateItem{}, err
	}
	cmd, err := cqrshttp.DecodeJSON[domain.UpdateItem](r)
	if err != nil {
		return domain.UpdateItem{}, err
	}
	cmd.ID = id
	return cmd, nil
}

func deleteItem(r *http.Request) (domain.DeleteItem, error) {
	id, err := itemID(r)
	return domain.DeleteItem{ID: id}, err
}

func getItemByID(r *http.Request) (domain.GetItemByID, error) {
	id, err := itemID(r)
	return domain.GetItemByID{ID: id}, err
}

func listItems(r *http.Request) (domain.ListItems, error) {
	query := domain.ListItems{PageSize: domain.DefaultPageSize}
	values := r.URL.Query()
	if size := values.Get("size"); size != "" {
		pageSize, err := strconv.Atoi(size)
		if err != nil || pageSize <= 0 || pageSize > domain.MaxPageSize {
			return query, fmt.Errorf("invalid size %q, want 1 to %d", size, domain.MaxPageSize)
		}
		query.PageSize = pageSize
	}
	if page := values.Get("page"); page != "" {
		index, err := strconv.Atoi(page)
		if err != nil || index < 0 || index > math.MaxInt/query.PageSize {
			return query, fmt.Errorf("invalid page %q", page)
		}
		query.PageIndex = index
	}
	return query, nil
}
