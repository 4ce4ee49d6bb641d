package cqrs

import (
	"reflect"
)

// Kind tells commands and queries apart.
type Kind int

const (
	KindCommand Kind = iota + 1
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuery:
		return "query"
	default:
		return "message"
	}
}

// Message is implemented by every value the buses route.
type Message interface {
	Kind() Kind
}

// Command expresses the intent to change state. A type becomes a Command by
// embedding CommandBase.
type Command interface {
	Message
	command()
}

// Query expresses the intent to read state and is bound to the result type R.
// A type becomes a Query[R] by embedding QueryBase[R].
type Query[R any] interface {
	Message
	result() R
}

// CommandBase marks the embedding struct as a Command.
type CommandBase struct{}

func (CommandBase) Kind() Kind { return KindCommand }

func (CommandBase) command() {}

// QueryBase marks the embedding struct as a Query returning R.
type QueryBase[R any] struct{}

func (QueryBase[R]) Kind() Kind { return KindQuery }

func (QueryBase[R]) result() (r R) { return }

// MessageType returns the fully qualified name of the concrete type of msg,
// prefixed with "*" for pointers.
func MessageType(msg any) string {
	if msg == nil {
		return "<nil>"
	}
	return typeName(reflect.TypeOf(msg))
}

func typeName(typ reflect.Type) string {
	if typ.Kind() == reflect.Pointer {
		return "*" + typeName(typ.Elem())
	}
	if typ.PkgPath() == "" {
		return typ.String()
	}
	return typ.PkgPath() + "." + typ.Name()
}

// MessageName is the package-qualified short name of msg's type, like
// "domain.CreateItem". Used in log lines and span names.
func MessageName(msg any) string {
	if msg == nil {
		return "<nil>"
	}
	return reflect.TypeOf(msg).String()
}
