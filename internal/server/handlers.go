package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"sync"

	"github.com/WesleyAC/hanabi/internal/config"
	"github.com/WesleyAC/hanabi/internal/engine"
	"github.com/WesleyAC/hanabi/internal/lobby"
	"github.com/WesleyAC/hanabi/internal/protocol"
	qr "github.com/WesleyAC/hanabi/internal/qrcode"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 16

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	cfg      config.Config
	static   fs.FS
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(cfg config.Config, static fs.FS, logger *zap.Logger, opts ...lobby.Option) *Handlers {
	h := &Handlers{
		cfg:    cfg,
		static: static,
		log:    logger,
		hubs:   make(map[string]*Hub),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	opts = append([]lobby.Option{
		lobby.WithMaxGames(cfg.MaxGames),
		lobby.WithOnChange(h.notify),
	}, opts...)
	h.LobbyMgr = lobby.NewManager(opts...)
	return h
}

func (h *Handlers) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, r.Header.Get("Origin"))
}

// notify is called by the registry after every accepted change.
func (h *Handlers) notify(gameID string, _ *engine.Game) {
	h.mu.Lock()
	hub := h.hubs[gameID]
	h.mu.Unlock()
	if hub != nil {
		hub.Notify()
	}
}

// hubFor returns the running hub for a game, starting one if needed. The
// registry is checked under h.mu so no hub starts for a removed game.
func (h *Handlers) hubFor(gameID string) (*Hub, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, err := h.LobbyMgr.Get(gameID)
	if err != nil {
		return nil, err
	}
	if hub, ok := h.hubs[l.ID]; ok {
		return hub, nil
	}
	hub := NewHub(l, h.log.With(zap.String("game", l.ID)))
	h.hubs[l.ID] = hub
	go hub.Run()
	return hub, nil
}

// removeGame drops the game and stops its hub.
func (h *Handlers) removeGame(gameID string) error {
	h.mu.Lock()
	if err := h.LobbyMgr.Remove(gameID); err != nil {
		h.mu.Unlock()
		return err
	}
	hub, ok := h.hubs[gameID]
	delete(h.hubs, gameID)
	h.mu.Unlock()
	if ok {
		hub.Stop()
	}
	return nil
}

// Close stops every hub.
func (h *Handlers) Close() {
	h.mu.Lock()
	hubs := h.hubs
	h.hubs = make(map[string]*Hub)
	h.mu.Unlock()
	for _, hub := range hubs {
		hub.Stop()
	}
}

// HandleNewGame creates a game under a caller-chosen name.
func (h *Handlers) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req protocol.NewGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	l, err := h.LobbyMgr.Create(req.Name, req.Players)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("game created", zap.String("game", l.ID), zap.Int("players", req.Players))
	writeJSON(w, http.StatusCreated, protocol.NewGameResponse{ID: l.ID})
}

// HandleCreateGame creates a game with a generated name.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req protocol.NewGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	l, err := h.LobbyMgr.CreateRandom(req.Players)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("game created", zap.String("game", l.ID), zap.Int("players", req.Players))
	writeJSON(w, http.StatusCreated, protocol.NewGameResponse{ID: l.ID})
}

func (h *Handlers) HandleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.LobbyMgr.List())
}

// HandleGameData returns the full state of a game.
func (h *Handlers) HandleGameData(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, l.Snapshot())
}

// HandleView returns the state as seen by one player.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, l.ViewFor(r.PathValue("name")))
}

func (h *Handlers) HandleJoin(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lookup(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")
	seat, err := l.Join(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("player joined", zap.String("game", l.ID), zap.String("name", name), zap.Int("seat", seat))
	writeJSON(w, http.StatusOK, protocol.JoinedMsg{Name: name, Seat: seat})
}

// HandlePlay applies one move and returns the new state.
func (h *Handlers) HandlePlay(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var move engine.Move
	if !h.decode(w, r, &move) {
		return
	}
	g, err := l.Apply(move)
	if err != nil {
		h.log.Debug("move rejected", zap.String("game", l.ID), zap.Int("player", move.Player), zap.Error(err))
		h.writeError(w, err)
		return
	}
	logMove(h.log.With(zap.String("game", l.ID)), g)
	writeJSON(w, http.StatusOK, g)
}

func (h *Handlers) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("game")
	if err := h.removeGame(id); err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("game removed", zap.String("game", id))
	w.WriteHeader(http.StatusNoContent)
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lookup(w, r)
	if !ok {
		return
	}
	base := h.cfg.PublicURL
	if base == "" {
		base = fmt.Sprintf("http://%s", r.Host)
	}
	png, err := qr.Generate(qr.GameLink(base, l.ID))
	if err != nil {
		h.log.Error("qr generation failed", zap.String("game", l.ID), zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleGamePage serves the client page for any game name.
func (h *Handlers) HandleGamePage(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.static, "game.html")
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	name := r.URL.Query().Get("name")

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, err := h.hubFor(gameID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade error", zap.Error(err))
		return
	}

	client := NewClient(hub, conn, name, h.log)
	if !hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*lobby.Lobby, bool) {
	l, err := h.LobbyMgr.Get(r.PathValue("game"))
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return l, true
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorMsg{Message: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

// writeError maps registry and rule errors to HTTP statuses.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrRejected):
		status = http.StatusConflict
	case errors.Is(err, lobby.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lobby.ErrExists):
		status = http.StatusConflict
	case errors.Is(err, lobby.ErrInvalidID), errors.Is(err, engine.ErrInvalidPlayerCount):
		status = http.StatusBadRequest
	case errors.Is(err, lobby.ErrTooManyGames):
		status = http.StatusServiceUnavailable
	case errors.Is(err, lobby.ErrNotSeated):
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, protocol.ErrorMsg{Message: err.Error(), Reason: engine.RejectReason(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
