package cqrs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createItem struct {
	CommandBase
	Name     string
	Quantity int
}

type updateItem struct {
	CommandBase
	ID   int
	Name string
}

type deleteItem struct {
	CommandBase
	ID int
}

type itemNotFoundError struct {
	ID int
}

func (e *itemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ID)
}

type ctxKey struct{}

func quietLogger() *Logger {
	logger := NewLogger()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestCommandBus(opts ...Option) *CommandBus {
	return NewCommandBus(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

type recordingHandler[C Command] struct {
	calls []C
	err   error
}

func (h *recordingHandler[C]) Handle(_ context.Context, command C) error {
	h.calls = append(h.calls, command)
	return h.err
}

func TestCommandBus_Execute(t *testing.T) {
	bus := newTestCommandBus()
	handler := &recordingHandler[createItem]{}

	require.NoError(t, RegisterCommandHandler[createItem](bus, handler))

	err := bus.Execute(context.Background(), createItem{Name: "sword", Quantity: 10})

	assert.NoError(t, err)
	require.Len(t, handler.calls, 1)
	assert.Equal(t, "sword", handler.calls[0].Name)
	assert.Equal(t, 10, handler.calls[0].Quantity)
}

func TestCommandBus_ExecuteRoutesByConcreteType(t *testing.T) {
	bus := newTestCommandBus()
	creates := &recordingHandler[createItem]{}
	deletes := &recordingHandler[deleteItem]{}

	require.NoError(t, RegisterCommandHandler[createItem](bus, creates))
	require.NoError(t, RegisterCommandHandler[deleteItem](bus, deletes))

	require.NoError(t, bus.Execute(context.Background(), deleteItem{ID: 7}))
	require.NoError(t, bus.Execute(context.Background(), deleteItem{ID: 8}))

	assert.Empty(t, creates.calls)
	assert.Equal(t, []deleteItem{{ID: 7}, {ID: 8}}, deletes.calls)
}

func TestCommandBus_HandlerNotFound(t *testing.T) {
	bus := newTestCommandBus()
	deletes := &recordingHandler[deleteItem]{}
	require.NoError(t, RegisterCommandHandler[deleteItem](bus, deletes))

	err := bus.Execute(context.Background(), createItem{Name: "sword", Quantity: 10})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	var notFound *HandlerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindCommand, notFound.Kind)
	assert.Equal(t, "github.com/paulvitic/cqrs-go.createItem", notFound.MessageType)
	assert.Contains(t, err.Error(), "createItem")
	assert.Equal(t, "no handler registered for command github.com/paulvitic/cqrs-go.createItem", err.Error())
	assert.Empty(t, deletes.calls)
}

func TestCommandBus_PointerAndValueAreDistinctTypes(t *testing.T) {
	bus := newTestCommandBus()
	values := &recordingHandler[createItem]{}
	require.NoError(t, RegisterCommandHandler[createItem](bus, values))

	err := bus.Execute(context.Background(), &createItem{Name: "shield"})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
	assert.Contains(t, err.Error(), "*github.com/paulvitic/cqrs-go.createItem")

	pointers := &recordingHandler[*createItem]{}
	require.NoError(t, RegisterCommandHandler[*createItem](bus, pointers))

	cmd := &createItem{Name: "shield"}
	require.NoError(t, bus.Execute(context.Background(), cmd))
	require.Len(t, pointers.calls, 1)
	assert.Same(t, cmd, pointers.calls[0])
	assert.Empty(t, values.calls)
}

func TestCommandBus_LastRegistrationWins(t *testing.T) {
	bus := newTestCommandBus()
	first := &recordingHandler[updateItem]{}
	second := &recordingHandler[updateItem]{}

	require.NoError(t, RegisterCommandHandler[updateItem](bus, first))
	require.NoError(t, RegisterCommandHandler[updateItem](bus, second))

	require.NoError(t, bus.Execute(context.Background(), updateItem{ID: 1, Name: "axe"}))

	assert.Empty(t, first.calls)
	assert.Len(t, second.calls, 1)
	assert.Equal(t, []string{"github.com/paulvitic/cqrs-go.updateItem"}, bus.Handlers())
}

func TestCommandBus_RejectDuplicates(t *testing.T) {
	bus := newTestCommandBus(RejectDuplicates())
	first := &recordingHandler[updateItem]{}
	second := &recordingHandler[updateItem]{}

	require.NoError(t, RegisterCommandHandler[updateItem](bus, first))
	err := RegisterCommandHandler[updateItem](bus, second)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	var duplicate *DuplicateHandlerError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, KindCommand, duplicate.Kind)
	assert.Equal(t, "github.com/paulvitic/cqrs-go.updateItem", duplicate.MessageType)

	require.NoError(t, bus.Execute(context.Background(), updateItem{ID: 1}))
	assert.Len(t, first.calls, 1)
	assert.Empty(t, second.calls)
}

func TestCommandBus_HandlerErrorIsReturnedUnchanged(t *testing.T) {
	bus := newTestCommandBus(WithMiddleware(Logging(quietLogger())))
	want := &itemNotFoundError{ID: 99}
	require.NoError(t, RegisterCommandFunc(bus, func(context.Context, deleteItem) error {
		return want
	}))

	err := bus.Execute(context.Background(), deleteItem{ID: 99})

	assert.True(t, err == want, "expected the handler's error value, got %#v", err)
	var notFound *itemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 99, notFound.ID)
	assert.NotErrorIs(t, err, ErrHandlerNotFound)
}

func TestCommandBus_NilCommand(t *testing.T) {
	bus := newTestCommandBus()
	handler := &recordingHandler[*createItem]{}
	require.NoError(t, RegisterCommandHandler[*createItem](bus, handler))

	assert.ErrorIs(t, bus.Execute(context.Background(), nil), ErrNilMessage)

	var cmd *createItem
	assert.ErrorIs(t, bus.Execute(context.Background(), cmd), ErrNilMessage)
	assert.Empty(t, handler.calls)
}

func TestCommandBus_RegisterInvalidHandlers(t *testing.T) {
	bus := newTestCommandBus()

	assert.ErrorIs(t, RegisterCommandHandler[createItem](bus, nil), ErrNilHandler)
	assert.ErrorIs(t, RegisterCommandFunc[createItem](bus, nil), ErrNilHandler)

	err := RegisterCommandFunc(bus, func(context.Context, Command) error { return nil })
	assert.ErrorIs(t, err, ErrAbstractMessageType)
	assert.Empty(t, bus.Handlers())
}

func TestCommandBus_PassesContextThrough(t *testing.T) {
	bus := newTestCommandBus()
	var seen any
	require.NoError(t, RegisterCommandFunc(bus, func(ctx context.Context, _ createItem) error {
		seen = ctx.Value(ctxKey{})
		return nil
	}))

	ctx := context.WithValue(context.Background(), ctxKey{}, "request-1")
	require.NoError(t, bus.Execute(ctx, createItem{}))

	assert.Equal(t, "request-1", seen)
}

func TestCommandBus_Middleware(t *testing.T) {
	bus := newTestCommandBus()
	calls := make([]string, 0)

	middleware := func(name string) MiddlewareFunc {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, msg Message) (any, error) {
				calls = append(calls, name)
				return next(ctx, msg)
			}
		}
	}
	bus.Use(middleware("middleware1"), middleware("middleware2"))

	require.NoError(t, RegisterCommandFunc(bus, func(context.Context, createItem) error {
		calls = append(calls, "handler")
		return nil
	}))

	require.NoError(t, bus.Execute(context.Background(), createItem{}))
	assert.Equal(t, []string{"middleware1", "middleware2", "handler"}, calls)

	calls = calls[:0]
	err := bus.Execute(context.Background(), deleteItem{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
	assert.Empty(t, calls, "middleware must not run when no handler is registered")
}

func TestCommandBus_HasHandlerAndHandlers(t *testing.T) {
	bus := newTestCommandBus()
	require.NoError(t, RegisterCommandHandler[updateItem](bus, &recordingHandler[updateItem]{}))
	require.NoError(t, RegisterCommandHandler[createItem](bus, &recordingHandler[createItem]{}))

	assert.True(t, bus.HasHandler(createItem{}))
	assert.False(t, bus.HasHandler(deleteItem{}))
	assert.False(t, bus.HasHandler(nil))
	assert.Equal(t, []string{
		"github.com/paulvitic/cqrs-go.createItem",
		"github.com/paulvitic/cqrs-go.updateItem",
	}, bus.Handlers())
}

func TestCommandBus_NestedDispatch(t *testing.T) {
	bus := newTestCommandBus()
	deletes := &recordingHandler[deleteItem]{}
	require.NoError(t, RegisterCommandHandler[deleteItem](bus, deletes))
	require.NoError(t, RegisterCommandFunc(bus, func(ctx context.Context, cmd updateItem) error {
		return bus.Execute(ctx, deleteItem{ID: cmd.ID})
	}))

	require.NoError(t, bus.Execute(context.Background(), updateItem{ID: 3}))
	assert.Equal(t, []deleteItem{{ID: 3}}, deletes.calls)
}

func TestCommandBus_ConcurrentExecute(t *testing.T) {
	bus := newTestCommandBus()
	var count atomic.Int64
	require.NoError(t, RegisterCommandFunc(bus, func(context.Context, createItem) error {
		count.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- bus.Execute(context.Background(), createItem{Quantity: i})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(50), count.Load())
}

func TestCommandBus_DefaultLogger(t *testing.T) {
	bus := NewCommandBus()
	require.NotNil(t, bus.dispatcher.logger)
	bus.dispatcher.logger.SetOutput(io.Discard)

	err := bus.Execute(context.Background(), createItem{})
	assert.True(t, errors.Is(err, ErrHandlerNotFound))
}
