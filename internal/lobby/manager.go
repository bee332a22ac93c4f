package lobby

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/WesleyAC/hanabi/internal/engine"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("game not found")
	ErrExists       = errors.New("game already exists")
	ErrInvalidID    = errors.New("game name must be 1-64 letters, digits, '-' or '_'")
	ErrTooManyGames = errors.New("too many games")
	ErrNotSeated    = errors.New("player has not joined this game")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Summary describes one game for listings.
type Summary struct {
	ID      string   `json:"id"`
	Players int      `json:"players"`
	Names   []string `json:"names"`
	Phase   string   `json:"phase"`
	Full    bool     `json:"full"` // every seat taken
}

// Manager is the registry of running games. Its own lock only guards the
// map; each Lobby serializes its moves with its own mutex.
type Manager struct {
	mu       sync.RWMutex
	lobbies  map[string]*Lobby
	maxGames int
	gameOpts []engine.Option
	onChange func(id string, g *engine.Game)
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxGames caps the number of concurrent games. Zero means no limit.
func WithMaxGames(n int) Option {
	return func(m *Manager) { m.maxGames = n }
}

// WithGameOptions passes options to engine.NewGame for every new game.
func WithGameOptions(opts ...engine.Option) Option {
	return func(m *Manager) { m.gameOpts = opts }
}

// WithOnChange registers a callback run after every accepted join or move,
// while the game's lock is held. It must not block.
func WithOnChange(fn func(id string, g *engine.Game)) Option {
	return func(m *Manager) { m.onChange = fn }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{lobbies: make(map[string]*Lobby)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create deals a new game under the given name.
func (m *Manager) Create(id string, players int) (*Lobby, error) {
	if !validID.MatchString(id) {
		return nil, ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lobbies[id]; ok {
		return nil, ErrExists
	}
	return m.addLocked(id, players)
}

// CreateRandom deals a new game under a generated name.
func (m *Manager) CreateRandom(players int) (*Lobby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		id := generateID()
		if _, exists := m.lobbies[id]; exists {
			continue
		}
		return m.addLocked(id, players)
	}
}

// addLocked deals the game while m.mu is held, so game options such as a
// shared shuffler are never used concurrently.
func (m *Manager) addLocked(id string, players int) (*Lobby, error) {
	if m.maxGames > 0 && len(m.lobbies) >= m.maxGames {
		return nil, ErrTooManyGames
	}
	g, err := engine.NewGame(players, m.gameOpts...)
	if err != nil {
		return nil, err
	}
	l := NewLobby(id, g)
	l.onChange = m.onChange
	m.lobbies[id] = l
	return l, nil
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) (*Lobby, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lobbies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

// Remove drops a game from the registry.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lobbies[id]; !ok {
		return ErrNotFound
	}
	delete(m.lobbies, id)
	return nil
}

// Len returns the number of registered games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lobbies)
}

// List summarizes every game, sorted by ID.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	lobbies := make([]*Lobby, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		lobbies = append(lobbies, l)
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(lobbies))
	for _, l := range lobbies {
		g := l.Snapshot()
		out = append(out, Summary{
			ID:      l.ID,
			Players: g.NumPlayers(),
			Names:   g.PlayerNames,
			Phase:   g.Phase().String(),
			Full:    g.Seated(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func generateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
