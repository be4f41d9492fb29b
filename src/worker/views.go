package worker

import (
	"context"
	"net/http"
	"time"

	"cryptoapp/src/config"
	handlers "cryptoapp/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewServerWithHandler(handler), nil
}

func NewServerWithHandler(handler *handlers.Handler) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Handle("/metrics", promhttp.Handler())
	s.Router.Route("/api/holdings", func(r chi.Router) {
		r.Post("/replay", s.Handler.ReplayAllHoldings)
		r.Post("/replay/{portfolioId}", s.Handler.ReplayPortfolioHoldings)
		r.Get("/schedules", s.Handler.GetSchedules)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 6 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
