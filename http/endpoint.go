package http

import (
	"errors"
	"net/http"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	cqrs "github.com/paulvitic/cqrs-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MaxBodyBytes caps every request body read by an endpoint or DecodeJSON.
const MaxBodyBytes int64 = 1 << 20

// Endpoint is a route the Server can mount.
type Endpoint interface {
	Path() string
	Methods() []string
	Handler() http.HandlerFunc
}

// ErrorMapper picks the response status for an error returned by a bus.
// Returning 0 leaves the decision to the default mapping.
type ErrorMapper func(err error) int

type endpoint struct {
	path    string
	methods []string
	status  int
	empty   int
	mapper  ErrorMapper
	logger  *cqrs.Logger
	serve   func(*endpoint, http.ResponseWriter, *http.Request)
}

func (e *endpoint) Path() string {
	return e.path
}

func (e *endpoint) Methods() []string {
	return e.methods
}

func (e *endpoint) Handler() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Body != nil {
			request.Body = http.MaxBytesReader(writer, request.Body, MaxBodyBytes)
		}
		e.serve(e, writer, request)
	}
}

// EndpointOption customises an endpoint built by CommandRoute or QueryRoute.
type EndpointOption func(*endpoint)

// Methods replaces the HTTP methods the endpoint answers.
func Methods(methods ...string) EndpointOption {
	return func(e *endpoint) {
		e.methods = methods
	}
}

// WithStatus replaces the status written on success.
func WithStatus(status int) EndpointOption {
	return func(e *endpoint) {
		e.status = status
	}
}

// EmptyStatus answers a query whose result is nil with status and a JSON
// error body instead of 200 and null.
func EmptyStatus(status int) EndpointOption {
	return func(e *endpoint) {
		e.empty = status
	}
}

// WithErrorMapper maps domain errors onto response statuses.
func WithErrorMapper(mapper ErrorMapper) EndpointOption {
	return func(e *endpoint) {
		e.mapper = mapper
	}
}

// WithLogger replaces the endpoint's logger.
func WithLogger(logger *cqrs.Logger) EndpointOption {
	return func(e *endpoint) {
		e.logger = logger
	}
}

func newEndpoint(path string, methods []string, status int, opts []EndpointOption) *endpoint {
	e := &endpoint{
		path:    path,
		methods: methods,
		status:  status,
		logger:  cqrs.NewLogger("HTTP"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// statusFor maps err, consulting the endpoint's mapper first.
func (e *endpoint) statusFor(err error) int {
	if e.mapper != nil {
		if status := e.mapper(err); status != 0 {
			return status
		}
	}
	if errors.Is(err, cqrs.ErrHandlerNotFound) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// rejectRequest answers a translator error: 413 when the body was too
// large, 400 otherwise.
func (e *endpoint) rejectRequest(writer http.ResponseWriter, request *http.Request, err error) {
	e.logger.Debug("Error translating %s %s: %v", request.Method, request.URL.Path, err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(writer, http.StatusRequestEntityTooLarge, err)
		return
	}
	writeError(writer, http.StatusBadRequest, err)
}

func (e *endpoint) fail(writer http.ResponseWriter, request *http.Request, err error) {
	status := e.statusFor(err)
	if status >= http.StatusInternalServerError {
		e.logger.Error("%s %s: %v", request.Method, request.URL.Path, err)
	} else {
		e.logger.Debug("%s %s: %v", request.Method, request.URL.Path, err)
	}
	writeError(writer, status, err)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError writes {"error": "..."}. Details of internal errors stay in the
// log.
func writeError(writer http.ResponseWriter, status int, err error) {
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	writeJSON(writer, status, errorBody{Error: message})
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: http.StatusText(status)})
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write(data)
}

func isNil(res any) bool {
	if res == nil {
		return true
	}
	v := reflect.ValueOf(res)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
