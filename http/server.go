package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	cqrs "github.com/paulvitic/cqrs-go"
)

const shutdownTimeout = 5 * time.Second

// Server mounts endpoints on a gorilla/mux router and serves a /health
// check.
type Server struct {
	srv    *http.Server
	router *mux.Router
	logger *cqrs.Logger
}

func NewServer(addr string) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: mux.NewRouter(),
		logger: cqrs.NewLogger("Server"),
	}
	s.router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	s.srv.Handler = s.router
	return s
}

func healthCheck(writer http.ResponseWriter, _ *http.Request) {
	writeJSON(writer, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) Logger() *cqrs.Logger {
	return s.logger
}

func (s *Server) RegisterEndpoint(endpoints ...Endpoint) {
	for _, endpoint := range endpoints {
		s.router.HandleFunc(endpoint.Path(), endpoint.Handler()).Methods(endpoint.Methods()...)
		s.logger.Info("Registered endpoint %v %s", endpoint.Methods(), endpoint.Path())
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in flight requests for at most
// five seconds.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
