package domain

// Board dimensions. They never change.
const (
    Width  = 10
    Height = 20
)

// Empty is the value of an unoccupied board cell.
const Empty PieceType = 0

// Board is the playfield stored row-major, row 0 at the top. Each cell holds
// the type of the piece that locked there, or Empty.
type Board [Height][Width]PieceType

// EmptyBoard returns a board with every cell empty.
func EmptyBoard() Board { return Board{} }

// Cell returns the content at (row, col); off-board coordinates read as Empty.
func (b *Board) Cell(row, col int) PieceType {
    if !onBoard(row, col) {
        return Empty
    }
    return b[row][col]
}

// Filled counts occupied cells.
func (b *Board) Filled() int {
    n := 0
    for r := range b {
        for _, c := range b[r] {
            if c != Empty {
                n++
            }
        }
    }
    return n
}

func onBoard(row, col int) bool {
    return row >= 0 && row < Height && col >= 0 && col < Width
}

// IsValid reports whether p fits: every occupied cell must be inside the
// side walls, above the floor and, once on the visible rows, on an empty
// cell. Rows above the board are allowed.
func (b *Board) IsValid(p Piece) bool {
    ok := true
    p.Cells(func(row, col int) {
        if !ok {
            return
        }
        switch {
        case col < 0 || col >= Width:
            ok = false
        case row >= Height:
            ok = false
        case row >= 0 && b[row][col] != Empty:
            ok = false
        }
    })
    return ok
}

// Place returns a copy of the board with p stamped in. Cells of p that are
// off the board (above row 0 in practice) are dropped.
func (b *Board) Place(p Piece) Board {
    out := *b
    p.Cells(func(row, col int) {
        if onBoard(row, col) {
            out[row][col] = p.Type
        }
    })
    return out
}

func (b *Board) rowFull(row int) bool {
    for _, c := range b[row] {
        if c == Empty {
            return false
        }
    }
    return true
}

// ClearFullLines removes every full row, shifts the remaining rows down in
// order and fills the top with empty rows. It returns the new board and the
// number of rows removed.
func (b *Board) ClearFullLines() (Board, int) {
    var out Board
    dst := Height - 1
    cleared := 0
    for src := Height - 1; src >= 0; src-- {
        if b.rowFull(src) {
            cleared++
            continue
        }
        out[dst] = b[src]
        dst--
    }
    if cleared == 0 {
        return *b, 0
    }
    return out, cleared
}
