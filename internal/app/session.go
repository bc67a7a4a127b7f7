package app

import (
    "sync"
    "time"

    "github.com/jaminalder/codex-tetris/internal/domain"
)

// SpawnDelay is how long a running game waits between locking a piece and
// bringing in the next one.
const SpawnDelay = 100 * time.Millisecond

// Session serialises every event for one game. Each call is a single
// read-modify-write of the whole domain.Game value.
type Session struct {
    mu     sync.Mutex
    game   domain.Game
    rng    domain.Randomizer
    clock  domain.DropClock
    lockAt int64
    now    func() int64
}

// NewSession returns an idle session. A nil rng uses the math/rand global
// source; a nil now uses the wall clock.
func NewSession(rng domain.Randomizer, now func() int64) *Session {
    if now == nil {
        now = func() int64 { return time.Now().UnixMilli() }
    }
    return &Session{game: domain.NewGame(rng), rng: rng, now: now}
}

// Do applies a player command and returns the resulting state.
func (s *Session) Do(cmd domain.Command) domain.Game {
    s.mu.Lock()
    defer s.mu.Unlock()
    prev := s.game
    s.game = s.game.Apply(cmd, s.rng)
    now := s.now()
    switch {
    case cmd == domain.CmdStart:
        s.clock.Reset(now)
    case cmd == domain.CmdPause && prev.Paused && !s.game.Paused:
        s.clock.Reset(now)
    }
    if prev.Current != nil && s.game.Current == nil {
        s.lockAt = now
    }
    return s.game
}

// Tick advances time to nowMillis and returns the resulting state.
func (s *Session) Tick(nowMillis int64) domain.Game {
    g, _ := s.Advance(nowMillis)
    return g
}

// Advance brings in the next piece once the spawn delay has passed and
// applies gravity when the drop clock is due. Nothing happens unless the game
// is running and unpaused. changed reports whether this call moved the game.
func (s *Session) Advance(nowMillis int64) (g domain.Game, changed bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    g = s.game
    if !g.Playing || g.Paused || g.Over {
        return g, false
    }
    if g.NeedsSpawn() {
        if nowMillis-s.lockAt < SpawnDelay.Milliseconds() {
            return g, false
        }
        s.game = g.SpawnNext(s.rng)
        s.clock.Reset(nowMillis)
        return s.game, s.game != g
    }
    if s.clock.Due(nowMillis, g.Level) {
        s.game = g.Drop()
        if s.game.Current == nil {
            s.lockAt = nowMillis
        }
    }
    return s.game, s.game != g
}

// Snapshot returns the current state.
func (s *Session) Snapshot() domain.Game {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.game
}

// Running reports whether the session wants ticks.
func (s *Session) Running() bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.game.Playing && !s.game.Paused && !s.game.Over
}
