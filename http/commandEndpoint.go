package http

import (
	"net/http"

	cqrs "github.com/paulvitic/cqrs-go"
)

// CommandRoute answers POST on path by translating the request into a C and
// executing it on bus. Success is 202 Accepted with no body.
func CommandRoute[C cqrs.Command](bus *cqrs.CommandBus, path string, translator CommandTranslator[C], opts ...EndpointOption) Endpoint {
	e := newEndpoint(path, []string{http.MethodPost}, http.StatusAccepted, opts)
	e.serve = func(e *endpoint, writer http.ResponseWriter, request *http.Request) {
		command, err := translator(request)
		if err != nil {
			e.rejectRequest(writer, request, err)
			return
		}

		if err := bus.Execute(request.Context(), command); err != nil {
			e.fail(writer, request, err)
			return
		}
		writer.WriteHeader(e.status)
	}
	return e
}
