package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	cqrs "github.com/paulvitic/cqrs-go"
)

// CommandTranslator builds a command from a request. An error is answered
// with 400 Bad Request, or 413 when the body exceeds MaxBodyBytes.
type CommandTranslator[C cqrs.Command] func(from *http.Request) (C, error)

// QueryTranslator builds a query from a request. Errors are answered as for
// CommandTranslator.
type QueryTranslator[Q cqrs.Message] func(from *http.Request) (Q, error)

// DecodeJSON decodes the request body, at most MaxBodyBytes of it, into a
// new T.
func DecodeJSON[T any](request *http.Request) (T, error) {
	var target T
	if request.Body == nil {
		return target, fmt.Errorf("empty request body")
	}
	data, err := io.ReadAll(http.MaxBytesReader(nil, request.Body, MaxBodyBytes))
	if err != nil {
		return target, fmt.Errorf("read request body: %w", err)
	}
	if err := json.Unmarshal(data, &target); err != nil {
		return target, fmt.Errorf("decode request body: %w", err)
	}
	return target, nil
}

// PathVar returns the route variable name, or "" when the route has none.
func PathVar(request *http.Request, name string) string {
	return mux.Vars(request)[name]
}
