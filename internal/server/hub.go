package server

import (
	"sync"

	"github.com/WesleyAC/hanabi/internal/engine"
	"github.com/WesleyAC/hanabi/internal/lobby"
	"github.com/WesleyAC/hanabi/internal/protocol"
	"go.uber.org/zap"
)

// Hub manages the WebSocket connections of one game. Moves still go through
// the lobby's lock; the hub only relays them and pushes state.
type Hub struct {
	lobby      *lobby.Lobby
	log        *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	changed    chan struct{}
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewHub(l *lobby.Lobby, logger *zap.Logger) *Hub {
	return &Hub{
		lobby:      l,
		log:        logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		changed:    make(chan struct{}, 1),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debug("client connected", zap.String("client", client.ID), zap.String("name", client.Name))
			h.sendStateToClient(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.changed:
			h.broadcastState()

		case <-h.quit:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Register hands a new connection to the hub. It returns false if the hub
// has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

// Notify asks the hub to push the current state. Calls made while a push is
// already pending are merged; the push always reads the latest state.
func (h *Hub) Notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// Stop closes every connection and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	if !h.clients[msg.Client] {
		return
	}
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgMove:
		h.handleMove(msg)
	default:
		h.sendError(msg.Client, protocol.ErrorMsg{Message: "unknown message type " + msg.Envelope.Type})
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, protocol.ErrorMsg{Message: "invalid join message"})
		return
	}
	seat, err := h.lobby.Join(join.Name)
	if err != nil {
		h.sendError(msg.Client, protocol.ErrorMsg{Message: err.Error(), Reason: engine.RejectReason(err)})
		return
	}
	msg.Client.Name = join.Name
	h.log.Info("player joined", zap.String("name", join.Name), zap.Int("seat", seat))
	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgJoined, protocol.JoinedMsg{Name: join.Name, Seat: seat}))
	// A rejoin changes nothing in the game, so push this client's view here.
	h.sendStateToClient(msg.Client)
}

func (h *Hub) handleMove(msg IncomingMessage) {
	if msg.Client.Name == "" {
		h.sendError(msg.Client, protocol.ErrorMsg{Message: lobby.ErrNotSeated.Error()})
		return
	}
	var mv protocol.MoveMsg
	if err := msg.Envelope.Decode(&mv); err != nil {
		h.sendError(msg.Client, protocol.ErrorMsg{Message: "invalid move message"})
		return
	}
	g, err := h.lobby.ApplyAs(msg.Client.Name, mv.Move)
	if err != nil {
		h.log.Debug("move rejected", zap.String("name", msg.Client.Name), zap.Error(err))
		h.sendError(msg.Client, protocol.ErrorMsg{Message: err.Error(), Reason: engine.RejectReason(err)})
		return
	}
	logMove(h.log, g)
	// Accepted moves reach every client through Notify.
}

func (h *Hub) broadcastState() {
	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	env := protocol.MustEnvelope(protocol.MsgGameState, protocol.GameState{
		GameID: h.lobby.ID,
		View:   h.lobby.ViewFor(client.Name),
	})
	client.SendEnvelope(env)
}

func (h *Hub) sendError(client *Client, msg protocol.ErrorMsg) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, msg))
}

// logMove writes the last accepted move of g as a commentary line.
func logMove(log *zap.Logger, g *engine.Game) {
	if rec, ok := g.Moves.Last(); ok {
		log.Info("move", zap.Int("seq", rec.Seq), zap.String("move", rec.Describe(g.PlayerNames)))
	}
}

// IncomingMessage pairs a message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
