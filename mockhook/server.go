// Package mockhook is a local stand-in for the automation webhook. It speaks
// the same JSON contract so the chat client can be tried without a workflow
// backend.
package mockhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"calchat/webhook"
)

const DefaultAddr = ":8787"

// Options controls how the stub answers.
type Options struct {
	// Reply is returned for every message. Empty echoes the message back.
	Reply string
	// Status forces a response code. Zero means 200.
	Status int
	// Field is the reply key: "response", "message" or "output".
	Field string
	// Delay is slept before answering, to exercise the client's sending state.
	Delay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Status == 0 {
		o.Status = http.StatusOK
	}
	if o.Field == "" {
		o.Field = webhook.ReplyKeys[0]
	}
	return o
}

// NewRouter returns the stub's HTTP handler. POST / and POST /webhook accept
// the request body the chat client sends.
func NewRouter(opts Options, logger zerolog.Logger) http.Handler {
	opts = opts.withDefaults()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	h := &handler{opts: opts, logger: logger}
	r.Post("/", h.handleMessage)
	r.Post("/webhook", h.handleMessage)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

type handler struct {
	opts   Options
	logger zerolog.Logger
}

func (h *handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req webhook.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	h.logger.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("session_id", req.SessionID).
		Str("timestamp", req.Timestamp).
		Int("message_len", len(req.Message)).
		Msg("message received")

	if h.opts.Delay > 0 {
		select {
		case <-time.After(h.opts.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if h.opts.Status < 200 || h.opts.Status > 299 {
		respondError(w, h.opts.Status, http.StatusText(h.opts.Status))
		return
	}

	reply := h.opts.Reply
	if reply == "" {
		reply = fmt.Sprintf("You said: %q", req.Message)
	}

	respondJSON(w, h.opts.Status, map[string]string{h.opts.Field: reply})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// requestLogger logs one line per request with zerolog
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().Str("addr", addr).Msg("mock webhook listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "mock webhook")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "mock webhook")
	}
}
