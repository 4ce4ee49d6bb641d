package cqrs

import (
	"context"
	"fmt"
	"reflect"
)

// QueryBus routes each query to the single handler registered for its
// concrete type and hands back the handler's typed result.
type QueryBus struct {
	dispatcher *dispatcher
}

// NewQueryBus creates a query bus with an empty registry.
func NewQueryBus(opts ...Option) *QueryBus {
	return &QueryBus{
		dispatcher: newDispatcher(KindQuery, "QueryBus", opts),
	}
}

// RegisterQueryHandler binds handler to the query type Q. A handler whose
// result type differs from the one Q declares does not compile.
func RegisterQueryHandler[Q Query[R], R any](bus *QueryBus, handler QueryHandler[Q, R]) error {
	if handler == nil {
		return ErrNilHandler
	}
	return bus.dispatcher.register(reflect.TypeFor[Q](), func(ctx context.Context, msg Message) (any, error) {
		return handler.Handle(ctx, msg.(Q))
	})
}

// RegisterQueryFunc binds fn to the query type Q.
func RegisterQueryFunc[Q Query[R], R any](bus *QueryBus, fn func(context.Context, Q) (R, error)) error {
	if fn == nil {
		return ErrNilHandler
	}
	return RegisterQueryHandler[Q, R](bus, QueryHandlerFunc[Q, R](fn))
}

// Ask runs the handler registered for the concrete type of query and returns
// its result typed as the query declares. Every call invokes the handler.
func Ask[R any](ctx context.Context, bus *QueryBus, query Query[R]) (R, error) {
	var zero R

	res, err := bus.Execute(ctx, query)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}

	r, ok := res.(R)
	if !ok {
		// only reachable when a middleware replaced the handler's result
		return zero, fmt.Errorf("query %s: result of type %T is not %s",
			MessageType(query), res, reflect.TypeFor[R]())
	}
	return r, nil
}

// Execute is the untyped form of Ask for callers that only hold a Message.
func (b *QueryBus) Execute(ctx context.Context, query Message) (any, error) {
	return b.dispatcher.dispatch(ctx, query)
}

// Use appends middleware to the chain wrapping every handler.
func (b *QueryBus) Use(middleware ...MiddlewareFunc) {
	b.dispatcher.use(middleware...)
}

// HasHandler reports whether a handler is registered for query's type.
func (b *QueryBus) HasHandler(query Message) bool {
	return b.dispatcher.has(query)
}

// Handlers returns the sorted names of the registered query types.
func (b *QueryBus) Handlers() []string {
	return b.dispatcher.names()
}
