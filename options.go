package cqrs

// Option configures a CommandBus or QueryBus.
type Option func(*options)

type options struct {
	logger           *Logger
	middleware       []MiddlewareFunc
	rejectDuplicates bool
}

// WithLogger sets the logger used for registration and dispatch messages.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMiddleware installs middleware at construction time. Middleware runs in
// the order given, outermost first.
func WithMiddleware(middleware ...MiddlewareFunc) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, middleware...)
	}
}

// RejectDuplicates makes registration fail with a *DuplicateHandlerError
// when the message type already has a handler, instead of replacing it.
func RejectDuplicates() Option {
	return func(o *options) {
		o.rejectDuplicates = true
	}
}
