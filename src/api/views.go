package api

import (
	"context"
	"net/http"
	"time"

	"cryptoapp/src/api/handlers"
	"cryptoapp/src/config"
	"cryptoapp/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router      *chi.Mux
	Handler     *handlers.Handler
	Logger      *logrus.Logger
	FrontendURL string
}

func NewServer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewServerWithHandler(handler, logger, cfg.Service.FrontendURL), nil
}

// NewServerWithHandler mounts the routes on an already built handler.
func NewServerWithHandler(handler *handlers.Handler, logger *logrus.Logger, frontendURL string) *Server {
	server := &Server{
		Router:      chi.NewRouter(),
		Handler:     handler,
		Logger:      logger,
		FrontendURL: frontendURL,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(RequestLogger(s.Logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{s.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3600,
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Get("/status", handlers.Status)
	s.Router.Handle("/metrics", promhttp.Handler())

	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", s.Handler.Register)
			r.Post("/login", s.Handler.Login)
			r.Post("/logout", s.Handler.Logout)
			r.Post("/forgot-password", s.Handler.ForgotPassword)
			r.Patch("/change-password", s.Handler.ChangePassword)

			r.Group(func(r chi.Router) {
				r.Use(s.Handler.TokenAuth.Verifier())
				r.Use(s.Handler.RequireUser)
				r.Get("/", s.Handler.GetCurrentUser)
				r.Delete("/", s.Handler.DeleteAccount)
			})
		})

		r.Route("/coins", func(r chi.Router) {
			r.Get("/", s.Handler.GetCoins)
			r.Get("/search", s.Handler.SearchCoins)
			r.Get("/{id}", s.Handler.GetCoinByID)
		})

		r.Route("/portfolios", func(r chi.Router) {
			r.Use(s.Handler.TokenAuth.Verifier())
			r.Use(s.Handler.RequireUser)

			r.Get("/", s.Handler.GetPortfolios)
			r.Post("/", s.Handler.CreatePortfolio)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.Handler.GetPortfolioByID)
				r.Put("/", s.Handler.RenamePortfolio)
				r.Delete("/", s.Handler.DeletePortfolio)

				r.Get("/transactions", s.Handler.GetTransactions)
				r.Post("/transactions", s.Handler.CreateTransaction)
				r.Get("/transactions/export", s.Handler.ExportTransactions)

				r.Get("/holdings", s.Handler.GetHoldings)
				r.Get("/holdings/{cryptoId}", s.Handler.GetHolding)
			})
		})
	})
}

// RequestLogger logs every request once it completes and exposes the logger to
// downstream code through the request context.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := utils.WithLogger(r.Context(), logger)

			next.ServeHTTP(ww, r.WithContext(ctx))

			if logger == nil {
				return
			}
			logger.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
			}).Info("request handled")
		})
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
