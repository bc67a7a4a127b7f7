package domain

// Piece is a live tetromino: a catalog shape placed on the board. X and Y
// locate the shape's top-left corner; Y is negative while the piece is still
// above the visible rows.
type Piece struct {
    Type     PieceType
    Rotation int
    Shape    Shape
    X, Y     int
}

// Spawn returns t in its initial orientation, horizontally centred and
// entirely above the board.
func Spawn(t PieceType) Piece {
    sh := InitialShape(t)
    return Piece{
        Type:  t,
        Shape: sh,
        X:     (Width - sh.Width()) / 2,
        Y:     -sh.Height(),
    }
}

// Move translates the piece. It does not check the result against a board.
func (p Piece) Move(dx, dy int) Piece {
    p.X += dx
    p.Y += dy
    return p
}

// Rotate steps to the next (clockwise) or previous rotation state, wrapping
// around the type's state count. Position is unchanged and the result is not
// validated.
func (p Piece) Rotate(clockwise bool) Piece {
    n := rotationCount(p.Type)
    if n == 0 {
        return p
    }
    if clockwise {
        p.Rotation = (p.Rotation + 1) % n
    } else {
        p.Rotation = (p.Rotation - 1 + n) % n
    }
    p.Shape = shapeAt(p.Type, p.Rotation)
    return p
}

// Cells calls fn with the board coordinates of every occupied cell.
func (p Piece) Cells(fn func(row, col int)) {
    p.Shape.Cells(func(r, c int) { fn(p.Y+r, p.X+c) })
}

// wallKicks are tried in order after a rotation collides.
var wallKicks = [...]struct{ dx, dy int }{
    {1, 0},
    {-1, 0},
    {0, -1},
    {1, -1},
    {-1, -1},
}

// Rotate resolves a rotation of p against the board. The rotated piece is
// accepted as is when it fits, otherwise each wall kick is tried in turn. ok
// is false when nothing fits, in which case p is returned unchanged.
func (b *Board) Rotate(p Piece, clockwise bool) (Piece, bool) {
    rotated := p.Rotate(clockwise)
    if b.IsValid(rotated) {
        return rotated, true
    }
    for _, k := range wallKicks {
        kicked := rotated.Move(k.dx, k.dy)
        if b.IsValid(kicked) {
            return kicked, true
        }
    }
    return p, false
}

// Ghost drops a copy of p as far as it will go. Display only.
func (b *Board) Ghost(p Piece) Piece {
    for {
        next := p.Move(0, 1)
        if !b.IsValid(next) {
            return p
        }
        p = next
    }
}
