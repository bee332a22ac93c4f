package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/WesleyAC/hanabi/internal/config"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	cfg      config.Config
	static   fs.FS
	log      *zap.Logger
}

// New builds a server. static must contain index.html and game.html at its
// root.
func New(cfg config.Config, static fs.FS, logger *zap.Logger) *Server {
	return &Server{
		handlers: NewHandlers(cfg, static, logger),
		cfg:      cfg,
		static:   static,
		log:      logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /", http.FileServer(http.FS(s.static)))
	mux.HandleFunc("GET /game/{game}", s.handlers.HandleGamePage)
	mux.HandleFunc("GET /healthz", s.handlers.HandleHealth)

	// API routes
	mux.HandleFunc("POST /api/newgame", s.handlers.HandleNewGame)
	mux.HandleFunc("POST /api/games", s.handlers.HandleCreateGame)
	mux.HandleFunc("GET /api/games", s.handlers.HandleListGames)
	mux.HandleFunc("GET /api/{game}/gamedata", s.handlers.HandleGameData)
	mux.HandleFunc("GET /api/{game}/view/{name}", s.handlers.HandleView)
	mux.HandleFunc("POST /api/{game}/join/{name}", s.handlers.HandleJoin)
	mux.HandleFunc("POST /api/{game}/play", s.handlers.HandlePlay)
	mux.HandleFunc("DELETE /api/{game}", s.handlers.HandleDeleteGame)
	mux.HandleFunc("GET /api/{game}/qr", s.handlers.HandleQR)
	mux.HandleFunc("GET /ws", s.handlers.HandleWS)

	return s.logRequests(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("hanabi server starting", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	s.handlers.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}
