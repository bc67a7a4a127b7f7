package app

import (
    "context"
    "errors"
    "io"
    "log"
    "sync"
    "time"

    "github.com/jaminalder/codex-tetris/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound       = errors.New("game not found")
    ErrUnknownCommand = errors.New("unknown command")
)

// DefaultRefresh is the scheduler period, roughly one display frame.
const DefaultRefresh = 16 * time.Millisecond

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID      string
    Game    domain.Game
    Created time.Time
    Updated time.Time
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

type entry struct {
    id      string
    session *Session
    created time.Time
    updated time.Time
    // stop cancels the tick runner; nil while the game is not running.
    stop context.CancelFunc
}

func (e *entry) state() GameState {
    return GameState{ID: e.id, Game: e.session.Snapshot(), Created: e.created, Updated: e.updated}
}

// Options configures a Service. Zero values pick defaults.
type Options struct {
    Renderer func(GameState) []byte
    Refresh  time.Duration
    // Seed fixes piece generation; 0 seeds every game randomly.
    Seed   int64
    Logger *log.Logger
    // Clock returns milliseconds; tests pin it.
    Clock func() int64
}

// Service manages games, their tick runners and subscribers.
type Service struct {
    mu      sync.Mutex
    games   map[string]*entry
    subs    map[string]map[*subscriber]struct{}
    render  func(GameState) []byte
    refresh time.Duration
    seeds   *seeder
    clock   func() int64
    logger  *log.Logger
    wg      sync.WaitGroup
    closed  bool
}

// New creates a service from opts.
func New(opts Options) *Service {
    if opts.Renderer == nil {
        opts.Renderer = func(gs GameState) []byte { return nil }
    }
    if opts.Refresh <= 0 {
        opts.Refresh = DefaultRefresh
    }
    if opts.Logger == nil {
        opts.Logger = log.New(io.Discard, "", 0)
    }
    if opts.Clock == nil {
        opts.Clock = func() int64 { return time.Now().UnixMilli() }
    }
    return &Service{
        games:   make(map[string]*entry),
        subs:    make(map[string]map[*subscriber]struct{}),
        render:  opts.Renderer,
        refresh: opts.Refresh,
        seeds:   &seeder{base: opts.Seed},
        clock:   opts.Clock,
        logger:  opts.Logger,
    }
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// CreateGame creates and registers a new idle game.
func (s *Service) CreateGame() (*GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    now := time.Now()
    e := &entry{
        id:      newGameID(),
        session: NewSession(s.seeds.next(), s.clock),
        created: now,
        updated: now,
    }
    s.games[e.id] = e
    s.logger.Printf("game %s created", e.id)
    gs := e.state()
    return &gs, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    e, ok := s.games[id]
    if !ok {
        return nil, false
    }
    gs := e.state()
    return &gs, true
}

// Do applies a player command, arms or disarms the tick runner and
// broadcasts the new state.
func (s *Service) Do(id string, cmd domain.Command) (*GameState, error) {
    s.mu.Lock()
    e, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    defer s.mu.Unlock()
    prev := e.session.Snapshot()
    g := e.session.Do(cmd)
    e.updated = time.Now()
    s.syncRunnerLocked(e)
    gs := e.state()
    if g != prev {
        s.publishLocked(gs)
    }
    return &gs, nil
}

// syncRunnerLocked starts the tick runner for a game that is running and
// stops it for one that is not. A paused or finished game has no live timer.
func (s *Service) syncRunnerLocked(e *entry) {
    running := e.session.Running() && !s.closed
    switch {
    case running && e.stop == nil:
        ctx, cancel := context.WithCancel(context.Background())
        e.stop = cancel
        s.wg.Add(1)
        go s.run(ctx, e)
    case !running && e.stop != nil:
        e.stop()
        e.stop = nil
    }
}

func (s *Service) run(ctx context.Context, e *entry) {
    defer s.wg.Done()
    ticker := time.NewTicker(s.refresh)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
        }
        g, changed := e.session.Advance(s.clock())
        if !changed {
            continue
        }

        s.mu.Lock()
        e.updated = time.Now()
        if g.Over {
            s.logger.Printf("game %s over: score=%d lines=%d level=%d", e.id, g.Score, g.Lines, g.Level)
        }
        s.syncRunnerLocked(e)
        s.publishLocked(e.state())
        s.mu.Unlock()
    }
}

// publishLocked fans gs out to the game's subscribers. The caller holds
// s.mu, which also guards every close of a subscriber channel, so a send
// never races an unsubscribe. Sends never block; a subscriber whose buffer
// is full is closed and dropped.
func (s *Service) publishLocked(gs GameState) {
    set := s.subs[gs.ID]
    if len(set) == 0 {
        return
    }
    payload := s.render(gs)
    dropped := 0
    for sub := range set {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            delete(set, sub)
            dropped++
        }
    }
    if dropped > 0 {
        s.logger.Printf("game %s: dropped %d slow subscriber(s)", gs.ID, dropped)
    }
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func. Unknown games get an already closed channel.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sub := &subscriber{ch: make(chan []byte, 1)}
    if _, ok := s.games[id]; !ok || s.closed {
        sub.close()
        return sub.ch, func() {}
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            sub.close()
            s.mu.Unlock()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}

// Close stops every tick runner and closes all subscriber channels.
func (s *Service) Close() {
    s.mu.Lock()
    s.closed = true
    for _, e := range s.games {
        if e.stop != nil {
            e.stop()
            e.stop = nil
        }
    }
    for id, set := range s.subs {
        for sub := range set {
            sub.close()
        }
        delete(s.subs, id)
    }
    s.mu.Unlock()
    s.wg.Wait()
}
