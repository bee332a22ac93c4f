package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WesleyAC/hanabi/internal/engine"
	"github.com/WesleyAC/hanabi/internal/protocol"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type wsView struct {
	Players    [][]engine.ViewCard `json:"players"`
	YourSeat   int                 `json:"your_seat"`
	IsYourTurn bool                `json:"is_your_turn"`
	Turn       int                 `json:"turn"`
	Moves      []json.RawMessage   `json:"moves"`
}

type wsState struct {
	GameID string `json:"game_id"`
	View   wsView `json:"view"`
}

func dial(t *testing.T, ts *httptest.Server, game string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game=" + game
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendWS(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(protocol.MustEnvelope(typ, payload)); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// readUntil reads envelopes until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, what string, match func(protocol.Envelope) bool) protocol.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var env protocol.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("waiting for %s: %v", what, err)
		}
		if match(env) {
			return env
		}
	}
}

func stateWhere(t *testing.T, cond func(wsState) bool) func(protocol.Envelope) bool {
	return func(env protocol.Envelope) bool {
		if env.Type != protocol.MsgGameState {
			return false
		}
		var st wsState
		if err := env.Decode(&st); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		return cond(st)
	}
}

func TestWebSocketPushesState(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	h := s.Handler()
	seatedGame(t, h)

	watcher := dial(t, ts, "kitchen")
	readUntil(t, watcher, "spectator state", stateWhere(t, func(st wsState) bool {
		return st.GameID == "kitchen" && st.View.YourSeat == -1 && len(st.View.Moves) == 0
	}))

	l, err := s.handlers.LobbyMgr.Get("kitchen")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first := l.Snapshot().Players[0].Cards[0].ID
	if rec := do(t, h, "POST", "/api/kitchen/play", engine.Discard(0, first)); rec.Code != http.StatusOK {
		t.Fatalf("discard: expected 200, got %d", rec.Code)
	}

	readUntil(t, watcher, "state after discard", stateWhere(t, func(st wsState) bool {
		return len(st.View.Moves) == 1 && st.View.Turn == 1
	}))
}

func TestWebSocketJoinAndMove(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	h := s.Handler()

	if rec := do(t, h, "POST", "/api/newgame", protocol.NewGameRequest{Name: "porch", Players: 2}); rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}

	alice := dial(t, ts, "porch")
	bob := dial(t, ts, "porch")

	// Moves before joining are refused.
	sendWS(t, alice, protocol.MsgMove, protocol.MoveMsg{Move: engine.Discard(0, uuid.Nil)})
	readUntil(t, alice, "not seated error", func(env protocol.Envelope) bool {
		return env.Type == protocol.MsgError
	})

	sendWS(t, alice, protocol.MsgJoin, protocol.JoinMsg{Name: "alice"})
	env := readUntil(t, alice, "joined", func(env protocol.Envelope) bool { return env.Type == protocol.MsgJoined })
	var joined protocol.JoinedMsg
	if err := env.Decode(&joined); err != nil || joined.Seat != 0 {
		t.Fatalf("expected seat 0, got %+v %v", joined, err)
	}
	sendWS(t, bob, protocol.MsgJoin, protocol.JoinMsg{Name: "bob"})
	readUntil(t, bob, "joined", func(env protocol.Envelope) bool { return env.Type == protocol.MsgJoined })

	var hand []engine.ViewCard
	readUntil(t, alice, "own view", stateWhere(t, func(st wsState) bool {
		if st.View.YourSeat != 0 || !st.View.IsYourTurn {
			return false
		}
		hand = st.View.Players[0]
		return true
	}))
	if len(hand) != 5 || hand[0].Color != nil {
		t.Fatalf("expected 5 hidden cards, got %+v", hand)
	}

	// bob is not on turn.
	sendWS(t, bob, protocol.MsgMove, protocol.MoveMsg{Move: engine.Discard(1, hand[0].ID)})
	env = readUntil(t, bob, "turn error", func(env protocol.Envelope) bool { return env.Type == protocol.MsgError })
	var e protocol.ErrorMsg
	if err := env.Decode(&e); err != nil || e.Reason != "not_your_turn" {
		t.Fatalf("expected not_your_turn, got %+v %v", e, err)
	}

	// The seat comes from the connection, not the message.
	sendWS(t, alice, protocol.MsgMove, protocol.MoveMsg{Move: engine.Discard(1, hand[0].ID)})
	readUntil(t, bob, "state after alice's discard", stateWhere(t, func(st wsState) bool {
		return len(st.View.Moves) == 1 && st.View.IsYourTurn
	}))
}
