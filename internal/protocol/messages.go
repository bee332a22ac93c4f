package protocol

import "github.com/WesleyAC/hanabi/internal/engine"

// Message types: Server → Client
const (
	MsgGameState = "game_state"
	MsgJoined    = "joined"
	MsgError     = "error"
)

// Message types: Client → Server
const (
	MsgJoin = "join"
	MsgMove = "move"
)

// JoinMsg is sent by a player to take a seat.
type JoinMsg struct {
	Name string `json:"name"`
}

// JoinedMsg confirms a seat.
type JoinedMsg struct {
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

// MoveMsg carries a move. The seat comes from the connection's joined name.
type MoveMsg struct {
	Move engine.Move `json:"move"`
}

// GameState is pushed to every client after each change.
type GameState struct {
	GameID string                `json:"game_id"`
	View   engine.PlayerViewData `json:"view"`
}

// ErrorMsg is sent to a client on error. Reason is set for rejected moves.
type ErrorMsg struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// NewGameRequest is the body of POST /api/newgame and POST /api/games.
type NewGameRequest struct {
	Name    string `json:"name"`
	Players int    `json:"players"`
}

// NewGameResponse names the created game.
type NewGameResponse struct {
	ID string `json:"id"`
}
