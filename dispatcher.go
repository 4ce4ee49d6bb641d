package cqrs

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// HandlerFunc is a resolved handler as seen by middleware. Command handlers
// always yield a nil result.
type HandlerFunc func(ctx context.Context, msg Message) (any, error)

// MiddlewareFunc wraps the resolved handler of every dispatch on a bus. It
// receives the next HandlerFunc and must return another one.
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

type registration struct {
	name    string
	handler HandlerFunc
}

// dispatcher is the registry and middleware chain shared by CommandBus and
// QueryBus.
type dispatcher struct {
	kind             Kind
	handlers         map[reflect.Type]registration
	middleware       []MiddlewareFunc
	rejectDuplicates bool
	logger           *Logger
	mutex            sync.RWMutex
}

func newDispatcher(kind Kind, name string, opts []Option) *dispatcher {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(name)
	}
	return &dispatcher{
		kind:             kind,
		handlers:         make(map[reflect.Type]registration),
		middleware:       o.middleware,
		rejectDuplicates: o.rejectDuplicates,
		logger:           o.logger,
	}
}

// register binds typ to handler. Under the default policy a second
// registration for the same type replaces the first.
func (d *dispatcher) register(typ reflect.Type, handler HandlerFunc) error {
	name := typeName(typ)
	if typ.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s", ErrAbstractMessageType, name)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, exists := d.handlers[typ]; exists {
		if d.rejectDuplicates {
			err := &DuplicateHandlerError{Kind: d.kind, MessageType: name}
			d.logger.Warn("%v", err)
			return err
		}
		d.logger.Warn("Replacing handler for %s %s", d.kind, name)
	}

	d.handlers[typ] = registration{name: name, handler: handler}
	d.logger.Info("Subscribed handler to %s %s", d.kind, name)
	return nil
}

func (d *dispatcher) lookup(msg Message) (HandlerFunc, []MiddlewareFunc, error) {
	typ := reflect.TypeOf(msg)

	d.mutex.RLock()
	defer d.mutex.RUnlock()

	reg, exists := d.handlers[typ]
	if !exists {
		return nil, nil, &HandlerNotFoundError{Kind: d.kind, MessageType: typeName(typ)}
	}
	return reg.handler, d.middleware, nil
}

// dispatch resolves the handler for msg and runs it through the middleware
// chain. The lock is released before the handler runs so handlers may
// dispatch further messages.
func (d *dispatcher) dispatch(ctx context.Context, msg Message) (any, error) {
	if isNilMessage(msg) {
		return nil, ErrNilMessage
	}

	handler, middleware, err := d.lookup(msg)
	if err != nil {
		d.logger.Debug("%v", err)
		return nil, err
	}

	if d.logger.DebugEnabled() {
		d.logger.Debug("Dispatching %s %s: %+v", d.kind, MessageName(msg), msg)
	}

	return applyMiddleware(handler, middleware...)(ctx, msg)
}

func (d *dispatcher) use(middleware ...MiddlewareFunc) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	// copy on write: in-flight dispatches keep the chain they resolved
	d.middleware = append(slices.Clip(d.middleware), middleware...)
}

func (d *dispatcher) has(msg Message) bool {
	if isNilMessage(msg) {
		return false
	}
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	_, exists := d.handlers[reflect.TypeOf(msg)]
	return exists
}

func (d *dispatcher) names() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for _, reg := range d.handlers {
		names = append(names, reg.name)
	}
	slices.Sort(names)
	return names
}

func applyMiddleware(h HandlerFunc, middleware ...MiddlewareFunc) HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}

	return h
}

func isNilMessage(msg Message) bool {
	if msg == nil {
		return true
	}
	value := reflect.ValueOf(msg)
	return value.Kind() == reflect.Pointer && value.IsNil()
}
