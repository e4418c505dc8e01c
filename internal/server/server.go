// Package server is a local stand-in for the ratings service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	api "github.com/ensigniasec/reactions/internal/api"
	"github.com/ensigniasec/reactions/internal/db"
	"github.com/ensigniasec/reactions/internal/validate"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
	latestLimit     = 1
)

// Store is the persistence the service needs.
type Store interface {
	LatestRecords(ctx context.Context, limit int) ([]db.Record, error)
	AddNote(ctx context.Context, n db.Note) error
}

// Options tunes the router.
type Options struct {
	// AllowedOrigins enables CORS for browser clients when non-empty.
	AllowedOrigins []string
}

// NewRouter wires the rating endpoints.
func NewRouter(store Store, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	h := &handlers{store: store}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/get-last-movie", h.lastRecord)
	r.Post("/add-movie-note", h.addNote)
	return r
}

type handlers struct {
	store Store
}

func (h *handlers) lastRecord(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.LatestRecords(r.Context(), latestLimit)
	if err != nil {
		logrus.WithError(err).Error("list records")
		writeErr(w, http.StatusInternalServerError, "INTERNAL", "unable to list records")
		return
	}
	movies := make([]api.Record, 0, len(recs))
	for _, rec := range recs {
		movies = append(movies, api.Record{ID: rec.ID, Title: rec.Title})
	}
	writeJSON(w, http.StatusOK, map[string]any{"movies": movies})
}

// addNote answers 400 only for duplicates; clients treat 400 as "already rated".
func (h *handlers) addNote(w http.ResponseWriter, r *http.Request) {
	var in api.NoteSubmission
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, "INVALID_BODY", "body must be a JSON note")
		return
	}
	if err := validate.Struct(in); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, "INVALID_NOTE", err.Error())
		return
	}

	err := h.store.AddNote(r.Context(), db.Note{RecordID: in.MovieID, Email: in.Email, Note: in.Note})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "note recorded"})
	case errors.Is(err, db.ErrDuplicateNote):
		writeErr(w, http.StatusBadRequest, "DUPLICATE", err.Error())
	case errors.Is(err, db.ErrUnknownRecord):
		writeErr(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		logrus.WithError(err).Error("add note")
		writeErr(w, http.StatusInternalServerError, "INTERNAL", "unable to record note")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, api.ErrorBody{Error: code, Message: msg})
}

// requestLogger logs one line per request through logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Info("request")
	})
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: requestTimeout}
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
