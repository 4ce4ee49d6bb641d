package cqrs

import "context"

// CommandHandler processes one concrete command type.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) error
}

// CommandHandlerFunc adapts a function to a CommandHandler.
type CommandHandlerFunc[C Command] func(ctx context.Context, command C) error

func (f CommandHandlerFunc[C]) Handle(ctx context.Context, command C) error {
	return f(ctx, command)
}
