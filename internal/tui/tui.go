// Package tui runs a game session in a terminal.
package tui

import (
    "context"
    "fmt"
    "time"

    "github.com/gdamore/tcell/v2"

    "github.com/jaminalder/codex-tetris/internal/app"
    "github.com/jaminalder/codex-tetris/internal/domain"
    "github.com/jaminalder/codex-tetris/internal/sound"
)

// Layout of the playfield on screen. Each board cell is two columns wide.
const (
    boardX    = 2
    boardY    = 1
    cellWidth = 2
    panelX    = boardX + domain.Width*cellWidth + 4
)

// Options configures a Client. Zero values pick defaults.
type Options struct {
    Rand    domain.Randomizer
    Refresh time.Duration
    Sound   sound.Player
    // Now returns milliseconds; tests pin it.
    Now func() int64
}

// Client owns one local session and draws it on a tcell screen.
type Client struct {
    screen  tcell.Screen
    session *app.Session
    sound   sound.Player
    refresh time.Duration
    now     func() int64
    last    domain.Game
}

// New returns a client drawing to screen. The screen must already be
// initialised.
func New(screen tcell.Screen, opts Options) *Client {
    if opts.Refresh <= 0 {
        opts.Refresh = app.DefaultRefresh
    }
    if opts.Sound == nil {
        opts.Sound = sound.Nop{}
    }
    if opts.Now == nil {
        opts.Now = func() int64 { return time.Now().UnixMilli() }
    }
    s := app.NewSession(opts.Rand, opts.Now)
    return &Client{
        screen:  screen,
        session: s,
        sound:   opts.Sound,
        refresh: opts.Refresh,
        now:     opts.Now,
        last:    s.Snapshot(),
    }
}

var runeCommands = map[rune]domain.Command{
    'z': domain.CmdRotateCW,
    'Z': domain.CmdRotateCW,
    'x': domain.CmdRotateCCW,
    'X': domain.CmdRotateCCW,
    ' ': domain.CmdHardDrop,
    'p': domain.CmdPause,
    'P': domain.CmdPause,
    's': domain.CmdStart,
    'S': domain.CmdStart,
    'r': domain.CmdReset,
    'R': domain.CmdReset,
}

var keyCommands = map[tcell.Key]domain.Command{
    tcell.KeyLeft:  domain.CmdMoveLeft,
    tcell.KeyRight: domain.CmdMoveRight,
    tcell.KeyDown:  domain.CmdSoftDrop,
    tcell.KeyUp:    domain.CmdRotateCW,
}

// keyCommand maps a key press to a game command.
func keyCommand(ev *tcell.EventKey) (domain.Command, bool) {
    if ev.Key() == tcell.KeyRune {
        cmd, ok := runeCommands[ev.Rune()]
        return cmd, ok
    }
    cmd, ok := keyCommands[ev.Key()]
    return cmd, ok
}

func isQuit(ev *tcell.EventKey) bool {
    switch ev.Key() {
    case tcell.KeyEscape, tcell.KeyCtrlC:
        return true
    case tcell.KeyRune:
        return ev.Rune() == 'q' || ev.Rune() == 'Q'
    }
    return false
}

// HandleEvent processes one terminal event. It returns false when the user
// asked to quit.
func (c *Client) HandleEvent(ev tcell.Event) bool {
    switch ev := ev.(type) {
    case *tcell.EventKey:
        if isQuit(ev) {
            return false
        }
        if cmd, ok := keyCommand(ev); ok {
            c.observe(c.session.Do(cmd))
        }
    case *tcell.EventResize:
        c.screen.Sync()
    }
    return true
}

// Step runs the scheduler at the current time. Ticks are only passed on
// while the session is running.
func (c *Client) Step() {
    if !c.session.Running() {
        return
    }
    c.observe(c.session.Tick(c.now()))
}

func (c *Client) observe(g domain.Game) {
    sound.Observe(c.sound, c.last, g)
    c.last = g
}

// Game returns the current state.
func (c *Client) Game() domain.Game { return c.session.Snapshot() }

// Run draws and reads input until ctx is done or the user quits.
func (c *Client) Run(ctx context.Context) error {
    events := make(chan tcell.Event, 64)
    go func() {
        for {
            ev := c.screen.PollEvent()
            if ev == nil {
                return
            }
            select {
            case events <- ev:
            case <-ctx.Done():
                return
            }
        }
    }()

    ticker := time.NewTicker(c.refresh)
    defer ticker.Stop()
    c.Draw()
    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case ev := <-events:
            if !c.HandleEvent(ev) {
                return nil
            }
            c.Draw()
        case <-ticker.C:
            c.Step()
            c.Draw()
        }
    }
}

var pieceColors = map[domain.PieceType]tcell.Color{
    domain.I: tcell.ColorAqua,
    domain.O: tcell.ColorYellow,
    domain.T: tcell.ColorPurple,
    domain.S: tcell.ColorGreen,
    domain.Z: tcell.ColorRed,
    domain.J: tcell.ColorBlue,
    domain.L: tcell.ColorOrange,
}

const (
    blockRune = '█'
    ghostRune = '░'
    emptyRune = '·'
)

func (c *Client) setCell(x, y int, r rune, st tcell.Style) {
    for i := 0; i < cellWidth; i++ {
        c.screen.SetContent(x+i, y, r, nil, st)
    }
}

func (c *Client) text(x, y int, s string, st tcell.Style) {
    for i, r := range []rune(s) {
        c.screen.SetContent(x+i, y, r, nil, st)
    }
}

// Draw renders the current state.
func (c *Client) Draw() {
    v := c.Game().View()
    c.screen.Clear()
    border := tcell.StyleDefault.Foreground(tcell.ColorGray)
    for row := 0; row <= domain.Height; row++ {
        c.screen.SetContent(boardX-1, boardY+row, '│', nil, border)
        c.screen.SetContent(boardX+domain.Width*cellWidth, boardY+row, '│', nil, border)
    }
    for col := 0; col < domain.Width*cellWidth; col++ {
        c.screen.SetContent(boardX+col, boardY+domain.Height, '─', nil, border)
    }

    for row := 0; row < domain.Height; row++ {
        for col := 0; col < domain.Width; col++ {
            x, y := boardX+col*cellWidth, boardY+row
            t := v.Cells[row][col]
            switch {
            case t == domain.Empty:
                c.setCell(x, y, emptyRune, tcell.StyleDefault.Foreground(tcell.ColorDimGray))
            case v.Overlays[row][col] == domain.OverlayGhost:
                c.setCell(x, y, ghostRune, tcell.StyleDefault.Foreground(pieceColors[t]))
            default:
                c.setCell(x, y, blockRune, tcell.StyleDefault.Foreground(pieceColors[t]))
            }
        }
    }

    label := tcell.StyleDefault.Foreground(tcell.ColorWhite)
    c.text(panelX, boardY, "NEXT", label)
    for r := 0; r < v.Next.Size; r++ {
        for col := 0; col < v.Next.Size; col++ {
            if v.Next.At(r, col) {
                c.setCell(panelX+col*cellWidth, boardY+1+r, blockRune, tcell.StyleDefault.Foreground(pieceColors[v.NextType]))
            }
        }
    }
    c.text(panelX, boardY+6, fmt.Sprintf("Score %d", v.Score), label)
    c.text(panelX, boardY+7, fmt.Sprintf("Level %d", v.Level), label)
    c.text(panelX, boardY+8, fmt.Sprintf("Lines %d", v.Lines), label)
    c.text(panelX, boardY+10, statusLine(v.State), label.Bold(true))
    c.text(panelX, boardY+12, "←/→ move  ↓ soft drop", border)
    c.text(panelX, boardY+13, "↑/Z rotate  X back", border)
    c.text(panelX, boardY+14, "Space drop  P pause", border)
    c.text(panelX, boardY+15, "S start  R reset  Q quit", border)
    c.screen.Show()
}

func statusLine(s domain.State) string {
    switch s {
    case domain.Playing:
        return "PLAYING"
    case domain.Paused:
        return "PAUSED"
    case domain.GameOver:
        return "GAME OVER"
    default:
        return "PRESS S TO START"
    }
}
