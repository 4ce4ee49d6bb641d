package cqrs

import (
	"errors"
	"fmt"
)

var (
	// ErrHandlerNotFound matches every *HandlerNotFoundError.
	ErrHandlerNotFound = errors.New("handler not found")
	// ErrDuplicateHandler matches every *DuplicateHandlerError.
	ErrDuplicateHandler = errors.New("handler already registered")
	ErrNilMessage       = errors.New("cannot dispatch nil message")
	ErrNilHandler       = errors.New("cannot register nil handler")
	// ErrAbstractMessageType is returned when registering a handler for an
	// interface type. Messages are keyed by their concrete type, so such a
	// handler could never be reached.
	ErrAbstractMessageType = errors.New("message type must be concrete")
)

// HandlerNotFoundError is returned when a message is dispatched without a
// handler registered for its concrete type. No handler has run.
type HandlerNotFoundError struct {
	Kind        Kind
	MessageType string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for %s %s", e.Kind, e.MessageType)
}

func (e *HandlerNotFoundError) Is(target error) bool {
	return target == ErrHandlerNotFound
}

// DuplicateHandlerError is returned by registration on a bus built with
// RejectDuplicates when the message type already has a handler.
type DuplicateHandlerError struct {
	Kind        Kind
	MessageType string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("handler already registered for %s %s", e.Kind, e.MessageType)
}

func (e *DuplicateHandlerError) Is(target error) bool {
	return target == ErrDuplicateHandler
}
