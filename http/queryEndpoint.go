package http

import (
	"errors"
	"net/http"

	cqrs "github.com/paulvitic/cqrs-go"
)

// QueryRoute answers GET on path by translating the request into a Q and
// asking bus. Success is 200 OK with the JSON encoded result.
func QueryRoute[Q cqrs.Query[R], R any](bus *cqrs.QueryBus, path string, translator QueryTranslator[Q], opts ...EndpointOption) Endpoint {
	e := newEndpoint(path, []string{http.MethodGet}, http.StatusOK, opts)
	e.serve = func(e *endpoint, writer http.ResponseWriter, request *http.Request) {
		query, err := translator(request)
		if err != nil {
			e.rejectRequest(writer, request, err)
			return
		}

		res, err := cqrs.Ask[R](request.Context(), bus, query)
		if err != nil {
			e.fail(writer, request, err)
			return
		}
		if e.empty != 0 && isNil(res) {
			writeError(writer, e.empty, errors.New(http.StatusText(e.empty)))
			return
		}
		writeJSON(writer, e.status, res)
	}
	return e
}
