package cqrs

import (
	"context"
	"time"
)

// Logging logs every dispatch and its outcome. Errors pass through
// untouched.
func Logging(logger *Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg Message) (any, error) {
			start := time.Now()
			logger.Info("dispatching %s %s", msg.Kind(), MessageName(msg))

			res, err := next(ctx, msg)
			if err != nil {
				logger.Warn("%s %s failed after %s: %v", msg.Kind(), MessageName(msg), time.Since(start), err)
				return res, err
			}

			logger.Debug("%s %s handled in %s", msg.Kind(), MessageName(msg), time.Since(start))
			return res, nil
		}
	}
}
