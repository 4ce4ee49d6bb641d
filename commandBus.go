package cqrs

import (
	"context"
	"reflect"
)

// CommandBus routes each command to the single handler registered for its
// concrete type. Handlers return nothing but an error.
type CommandBus struct {
	dispatcher *dispatcher
}

// NewCommandBus creates a command bus with an empty registry.
func NewCommandBus(opts ...Option) *CommandBus {
	return &CommandBus{
		dispatcher: newDispatcher(KindCommand, "CommandBus", opts),
	}
}

// RegisterCommandHandler binds handler to the command type C. By default a
// later registration for C replaces an earlier one.
func RegisterCommandHandler[C Command](bus *CommandBus, handler CommandHandler[C]) error {
	if handler == nil {
		return ErrNilHandler
	}
	return bus.dispatcher.register(reflect.TypeFor[C](), func(ctx context.Context, msg Message) (any, error) {
		return nil, handler.Handle(ctx, msg.(C))
	})
}

// RegisterCommandFunc binds fn to the command type C.
func RegisterCommandFunc[C Command](bus *CommandBus, fn func(context.Context, C) error) error {
	if fn == nil {
		return ErrNilHandler
	}
	return RegisterCommandHandler[C](bus, CommandHandlerFunc[C](fn))
}

// Execute runs the handler registered for the concrete type of command and
// returns its error as is. When no handler is registered it returns a
// *HandlerNotFoundError and nothing runs.
func (b *CommandBus) Execute(ctx context.Context, command Command) error {
	_, err := b.dispatcher.dispatch(ctx, command)
	return err
}

// Use appends middleware to the chain wrapping every handler.
func (b *CommandBus) Use(middleware ...MiddlewareFunc) {
	b.dispatcher.use(middleware...)
}

// HasHandler reports whether a handler is registered for command's type.
func (b *CommandBus) HasHandler(command Command) bool {
	return b.dispatcher.has(command)
}

// Handlers returns the sorted names of the registered command types.
func (b *CommandBus) Handlers() []string {
	return b.dispatcher.names()
}
