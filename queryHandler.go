package cqrs

import "context"

// QueryHandler answers one concrete query type. The constraint ties the
// handler's result to the result type the query declares.
type QueryHandler[Q Query[R], R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// QueryHandlerFunc adapts a function to a QueryHandler.
type QueryHandlerFunc[Q Query[R], R any] func(ctx context.Context, query Q) (R, error)

func (f QueryHandlerFunc[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	return f(ctx, query)
}
