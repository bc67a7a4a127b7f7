package domain

// Overlay marks what a display cell shows beyond the locked board.
type Overlay uint8

const (
    OverlayNone Overlay = iota
    OverlayGhost
    OverlayActive
)

// View is a read-only snapshot for renderers. Cells merges the locked board
// with the ghost and the active piece; it is a copy and never feeds back into
// the game.
type View struct {
    Cells    Board
    Overlays [Height][Width]Overlay
    Next     Shape
    NextType PieceType
    Score    int
    Level    int
    Lines    int
    Playing  bool
    Paused   bool
    Over     bool
    State    State
}

// View builds the display snapshot of g.
func (g Game) View() View {
    v := View{
        Cells:   g.Board,
        Score:   g.Score,
        Level:   g.Level,
        Lines:   g.Lines,
        Playing: g.Playing,
        Paused:  g.Paused,
        Over:    g.Over,
        State:   g.State(),
    }
    if g.Next != nil {
        v.Next = g.Next.Shape
        v.NextType = g.Next.Type
    }
    if g.Current == nil {
        return v
    }
    ghost := g.Board.Ghost(*g.Current)
    ghost.Cells(func(row, col int) {
        if onBoard(row, col) {
            v.Overlays[row][col] = OverlayGhost
            v.Cells[row][col] = g.Current.Type
        }
    })
    g.Current.Cells(func(row, col int) {
        if onBoard(row, col) {
            v.Overlays[row][col] = OverlayActive
            v.Cells[row][col] = g.Current.Type
        }
    })
    return v
}
