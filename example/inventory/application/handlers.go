package application

import (
	"errors"

	cqrs "github.com/paulvitic/cqrs-go"
	"github.com/paulvitic/cqrs-go/example/inventory/domain"
)

// RegisterHandlers binds every inventory command and query to its handler.
func RegisterHandlers(commands *cqrs.CommandBus, queries *cqrs.QueryBus, repo domain.Repository) error {
	return errors.Join(
		cqrs.RegisterCommandHandler[domain.CreateItem](commands, NewCreateItemHandler(repo)),
		cqrs.RegisterCommandHandler[domain.UpdateItem](commands, NewUpdateItemHandler(repo)),
		cqrs.RegisterCommandHandler[domain.DeleteItem](commands, NewDeleteItemHandler(repo)),
		cqrs.RegisterQueryHandler[domain.GetItemByID, *domain.Item](queries, NewGetItemByIDHandler(repo)),
		cqrs.RegisterQueryHandler[domain.ListItems, cqrs.Page[domain.Item]](queries, NewListItemsHandler(repo)),
	)
}
