package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/plus3/rowbreak/logging"
	"go.uber.org/zap"
)

// Server serves a leaderboard over HTTP:
//
//	GET /?name=N&score=S  store a score
//	GET /                 JSON array of the top records
//	GET /live             websocket pushing the top records on every change
//	GET /healthz          liveness
type Server struct {
	r      *chi.Mux
	scores Scores
	hub    *hub
	top    int
	log    *zap.Logger
}

// NewServer wires routes and middleware around scores. top bounds the
// list returned to readers.
func NewServer(scores Scores, top int, logger *zap.Logger) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		scores: scores,
		hub:    newHub(),
		top:    top,
		log:    logging.OrNop(logger).Named("leaderboard"),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLog)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "subscribers": s.hub.len()})
	})
	s.r.Get("/live", s.handleLive)
	s.r.With(chimw.Timeout(10*time.Second)).Get("/", s.handleRoot)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// Close disconnects every live subscriber.
func (s *Server) Close() {
	s.hub.closeAll()
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("name") && !q.Has("score") {
		s.handleList(w, r)
		return
	}

	name := cleanName(q.Get("name"))
	score, err := strconv.Atoi(q.Get("score"))
	switch {
	case name == "":
		writeError(w, http.StatusBadRequest, "missing name")
		return
	case err != nil || score < 0:
		writeError(w, http.StatusBadRequest, "score must be a non-negative integer")
		return
	}

	if err := s.scores.Add(r.Context(), Record{Name: name, Score: score}); err != nil {
		s.log.Error("store score", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store score")
		return
	}
	s.log.Info("score stored", zap.String("name", name), zap.Int("score", score))

	if payload, err := s.topJSON(r.Context()); err == nil {
		s.hub.broadcast(payload)
	} else {
		s.log.Warn("build live update", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.scores.Top(r.Context(), s.top)
	if err != nil {
		s.log.Error("list scores", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list scores")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) topJSON(ctx context.Context) ([]byte, error) {
	records, err := s.scores.Top(ctx, s.top)
	if err != nil {
		return nil, err
	}
	return json.Marshal(records)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("id", chimw.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
