package inventory

import (
	cqrs "github.com/paulvitic/cqrs-go"
	"github.com/paulvitic/cqrs-go/example/inventory/adapter"
	"github.com/paulvitic/cqrs-go/example/inventory/application"
	"github.com/paulvitic/cqrs-go/example/inventory/domain"
	cqrshttp "github.com/paulvitic/cqrs-go/http"
)

// Context wires the inventory buses to a repository.
type Context struct {
	Commands *cqrs.CommandBus
	Queries  *cqrs.QueryBus
}

// NewContext builds both buses with opts and registers every inventory
// handler against repo.
func NewContext(repo domain.Repository, opts ...cqrs.Option) (*Context, error) {
	ctx := &Context{
		Commands: cqrs.NewCommandBus(opts...),
		Queries:  cqrs.NewQueryBus(opts...),
	}
	if err := application.RegisterHandlers(ctx.Commands, ctx.Queries, repo); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (c *Context) Endpoints(opts ...cqrshttp.EndpointOption) []cqrshttp.Endpoint {
	return adapter.ItemEndpoints(c.Commands, c.Queries, opts...)
}
