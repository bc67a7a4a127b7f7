package domain

import "math/rand"

// Randomizer picks piece types. *rand.Rand satisfies it; tests pass fixed
// sequences.
type Randomizer interface {
    Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// RandomPiece spawns a uniformly chosen piece type. A nil rng falls back to
// the math/rand global source.
func RandomPiece(rng Randomizer) Piece {
    if rng == nil {
        rng = globalRand{}
    }
    return Spawn(Types[rng.Intn(len(Types))])
}

// Game is the complete state of one session. Transitions take a Game by
// value and return the successor, so a caller holding the old value never
// sees a partial update. Current and Next are never mutated through the
// pointer; a move installs a new one.
type Game struct {
    Board   Board
    Current *Piece
    Next    *Piece
    Score   int
    Level   int
    Lines   int
    Playing bool
    Paused  bool
    Over    bool
}

// State is the coarse lifecycle phase derived from the flags.
type State uint8

const (
    Idle State = iota
    Playing
    Paused
    GameOver
)

func (s State) String() string {
    switch s {
    case Playing:
        return "playing"
    case Paused:
        return "paused"
    case GameOver:
        return "game-over"
    default:
        return "idle"
    }
}

// NewGame returns an idle game with an empty board and two pieces drawn.
func NewGame(rng Randomizer) Game {
    cur := RandomPiece(rng)
    next := RandomPiece(rng)
    return Game{Board: EmptyBoard(), Current: &cur, Next: &next}
}

// State reports the lifecycle phase.
func (g Game) State() State {
    switch {
    case g.Over:
        return GameOver
    case g.Playing && g.Paused:
        return Paused
    case g.Playing:
        return Playing
    default:
        return Idle
    }
}

// active is true when piece commands and gravity should act.
func (g Game) active() bool {
    return g.Playing && !g.Paused && !g.Over && g.Current != nil
}

// Start begins a fresh round. Score, lines, level and board are reset; the
// pieces already drawn are kept when present.
func (g Game) Start(rng Randomizer) Game {
    fresh := NewGame(rng)
    if g.Current != nil {
        fresh.Current = g.Current
    }
    if g.Next != nil {
        fresh.Next = g.Next
    }
    fresh.Playing = true
    return fresh
}

// TogglePause flips the paused flag of a running game.
func (g Game) TogglePause() Game {
    if !g.Playing || g.Over {
        return g
    }
    g.Paused = !g.Paused
    return g
}

// Reset discards everything and returns a new idle game.
func (g Game) Reset(rng Randomizer) Game {
    return NewGame(rng)
}

// MovePiece shifts the active piece when the target fits. A blocked downward
// move does not lock; only Drop and HardDrop do.
func (g Game) MovePiece(dx, dy int) Game {
    if !g.active() {
        return g
    }
    moved := g.Current.Move(dx, dy)
    if !g.Board.IsValid(moved) {
        return g
    }
    g.Current = &moved
    return g
}

// RotatePiece rotates the active piece, falling back to wall kicks.
func (g Game) RotatePiece(clockwise bool) Game {
    if !g.active() {
        return g
    }
    rotated, ok := g.Board.Rotate(*g.Current, clockwise)
    if !ok {
        return g
    }
    g.Current = &rotated
    return g
}

// Drop is one step of gravity: the active piece falls a row, or locks when it
// cannot.
func (g Game) Drop() Game {
    if !g.active() {
        return g
    }
    moved := g.Current.Move(0, 1)
    if g.Board.IsValid(moved) {
        g.Current = &moved
        return g
    }
    return g.lock(*g.Current)
}

// HardDrop lets the active piece fall to its resting row and locks it.
func (g Game) HardDrop() Game {
    if !g.active() {
        return g
    }
    return g.lock(g.Board.Ghost(*g.Current))
}

// lock stamps p into the board, clears full rows and updates the counters.
// The score uses the level in force before the clear.
func (g Game) lock(p Piece) Game {
    placed := g.Board.Place(p)
    cleared, n := placed.ClearFullLines()
    levelBefore := g.Level
    g.Board = cleared
    g.Lines += n
    g.Level = LevelFor(g.Lines)
    g.Score += Score(n, levelBefore)
    g.Current = nil
    return g
}

// NeedsSpawn reports whether a running game is waiting for its next piece.
func (g Game) NeedsSpawn() bool {
    return g.Playing && !g.Over && g.Current == nil
}

// SpawnNext promotes the queued piece and draws a new one. When the promoted
// piece has no room to enter the board the game ends instead.
func (g Game) SpawnNext(rng Randomizer) Game {
    if !g.NeedsSpawn() {
        return g
    }
    var p Piece
    if g.Next != nil {
        p = *g.Next
    } else {
        p = RandomPiece(rng)
    }
    if g.Board.spawnBlocked(p) {
        g.Over = true
        g.Playing = false
        return g
    }
    next := RandomPiece(rng)
    g.Current = &p
    g.Next = &next
    return g
}

// spawnBlocked is true when p overlaps an occupied visible cell where it
// stands, or when the rows it first enters at the top of the board are
// already taken.
func (b *Board) spawnBlocked(p Piece) bool {
    overlap := false
    p.Cells(func(row, col int) {
        if onBoard(row, col) && b[row][col] != Empty {
            overlap = true
        }
    })
    if overlap {
        return true
    }
    bottom := -1
    p.Shape.Cells(func(r, _ int) {
        if r > bottom {
            bottom = r
        }
    })
    if bottom < 0 || p.Y+bottom >= 0 {
        return false
    }
    return !b.IsValid(p.Move(0, -bottom-p.Y))
}

// Apply runs a single command. Every command is defined in every state;
// commands that make no sense right now leave the game unchanged.
func (g Game) Apply(cmd Command, rng Randomizer) Game {
    switch cmd {
    case CmdStart:
        return g.Start(rng)
    case CmdPause:
        return g.TogglePause()
    case CmdReset:
        return g.Reset(rng)
    case CmdMoveLeft:
        return g.MovePiece(-1, 0)
    case CmdMoveRight:
        return g.MovePiece(1, 0)
    case CmdSoftDrop:
        return g.MovePiece(0, 1)
    case CmdRotateCW:
        return g.RotatePiece(true)
    case CmdRotateCCW:
        return g.RotatePiece(false)
    case CmdHardDrop:
        return g.HardDrop()
    case CmdTick:
        return g.Drop()
    case CmdSpawn:
        return g.SpawnNext(rng)
    }
    return g
}
