package http

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/frontend"
	"github.com/mnemon-dev/mnemon/pkg/usecase"
	"github.com/mnemon-dev/mnemon/pkg/utils/logging"
	"github.com/mnemon-dev/mnemon/pkg/utils/safe"
)

type Server struct {
	router            *chi.Mux
	chatUC            *usecase.ChatUseCase
	apologyMessage    string
	validationMessage string
}

type Options func(*Server)

// WithApologyMessage overrides the user-facing message returned when a
// turn fails for any internal reason.
func WithApologyMessage(msg string) Options {
	return func(s *Server) {
		if msg != "" {
			s.apologyMessage = msg
		}
	}
}

// WithValidationMessage overrides the user-facing message returned for
// an empty or whitespace-only question.
func WithValidationMessage(msg string) Options {
	return func(s *Server) {
		if msg != "" {
			s.validationMessage = msg
		}
	}
}

func New(chatUC *usecase.ChatUseCase, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router:            r,
		chatUC:            chatUC,
		apologyMessage:    defaultApologyMessage,
		validationMessage: defaultValidationMessage,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", healthHandler)
	r.Post("/chat", s.chatHandler())

	// Static file serving for the chat page (catch-all, must be last)
	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}

	r.Get("/*", spaHandler(staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// spaHandler serves static files and falls back to index.html
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		if urlPath == "" {
			urlPath = "index.html"
		}

		if file, err := staticFS.Open(urlPath); err != nil {
			if indexFile, err := staticFS.Open("index.html"); err == nil {
				defer safe.Close(r.Context(), indexFile)
				w.Header().Set("Content-Type", "text/html")
				safe.Copy(r.Context(), w, indexFile)
				return
			}

			http.NotFound(w, r)
			return
		} else {
			safe.Close(r.Context(), file)
		}

		fileServer.ServeHTTP(w, r)
	}
}
