// file: rtrie/servs/s_trie/trie_api/rest.go
package trie_api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"github.com/rskv-p/rtrie/recover"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
)

// NewRouter builds the HTTP API over s. A nil auth leaves every route open.
func NewRouter(s *trie_serv.Service, auth *Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(recover.Middleware("trie_api"))
	r.Use(requestLogger)

	if auth != nil {
		r.Post("/auth/login", auth.handleLogin())
	}

	r.Route("/api", func(r chi.Router) {
		// Public reads
		r.Get("/keys", handleList(s))      // ordered entries
		r.Get("/keys/{key}", handleGet(s)) // one value
		r.Get("/first", handleFirst(s))
		r.Get("/last", handleLast(s))
		r.Get("/stats", handleStats(s))
		r.Get("/dump", handleDump(s))
		r.Get("/watch", handleWatch(s)) // websocket change feed

		// Writes
		r.Group(func(r chi.Router) {
			if auth != nil {
				r.Use(auth.Middleware(RoleWriter))
			}
			r.Put("/keys/{key}", handlePut(s))       // insert or replace
			r.Delete("/keys/{key}", handleDelete(s)) // remove
		})
	})
	return r
}

// requestLogger puts a logger tagged with the request id into the request context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := x_log.New("trie_api").With().
			Str("req_id", middleware.GetReqID(r.Context())).
			Str("route", r.Method+" "+r.URL.Path).
			Logger()
		next.ServeHTTP(w, r.WithContext(x_log.WithLogger(r.Context(), &l)))
	})
}

// ServeREST serves the API on addr until ctx is cancelled.
func ServeREST(ctx context.Context, addr string, s *trie_serv.Service, auth *Auth) error {
	log := x_log.New("trie_api")
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(s, auth),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("session", s.ID()).Bool("auth", auth != nil).Msg("REST API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("REST API shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
