package domain

import "fmt"

// PieceType identifies one of the seven tetrominoes. The zero value is not a
// valid piece so that it can double as the empty board cell.
type PieceType uint8

const (
    I PieceType = iota + 1
    O
    T
    S
    Z
    J
    L
)

// Types lists every piece type in catalog order.
var Types = [...]PieceType{I, O, T, S, Z, J, L}

var typeNames = [...]string{"", "I", "O", "T", "S", "Z", "J", "L"}

func (t PieceType) String() string {
    if t == 0 || int(t) >= len(typeNames) {
        return fmt.Sprintf("PieceType(%d)", uint8(t))
    }
    return typeNames[t]
}

// Shape is one rotation state of a piece: a square occupancy matrix.
// Shapes are values, so handing one out never exposes catalog storage.
type Shape struct {
    Size  int
    cells [4][4]bool
}

// At reports whether the cell at (row, col) of the matrix is occupied.
// Coordinates outside the matrix read as empty.
func (s Shape) At(row, col int) bool {
    if row < 0 || col < 0 || row >= s.Size || col >= s.Size {
        return false
    }
    return s.cells[row][col]
}

// Width and Height are the matrix dimensions, not the occupied extent.
func (s Shape) Width() int  { return s.Size }
func (s Shape) Height() int { return s.Size }

// Cells calls fn for every occupied cell, row-major.
func (s Shape) Cells(fn func(row, col int)) {
    for r := 0; r < s.Size; r++ {
        for c := 0; c < s.Size; c++ {
            if s.cells[r][c] {
                fn(r, c)
            }
        }
    }
}

func shape(rows ...string) Shape {
    s := Shape{Size: len(rows)}
    for r, line := range rows {
        for c, ch := range line {
            s.cells[r][c] = ch == '#'
        }
    }
    return s
}

// Rotation tables. I, S and Z only alternate between two states and O never
// changes; T, J and L cycle through four.
var catalog = map[PieceType][]Shape{
    I: {
        shape(
            "....",
            "####",
            "....",
            "....",
        ),
        shape(
            "..#.",
            "..#.",
            "..#.",
            "..#.",
        ),
    },
    // O is kept as a 2x2 matrix, so it spawns at x=4 rather than 3.
    O: {
        shape(
            "##",
            "##",
        ),
    },
    T: {
        shape(
            ".#.",
            "###",
            "...",
        ),
        shape(
            ".#.",
            ".##",
            ".#.",
        ),
        shape(
            "...",
            "###",
            ".#.",
        ),
        shape(
            ".#.",
            "##.",
            ".#.",
        ),
    },
    S: {
        shape(
            ".##",
            "##.",
            "...",
        ),
        shape(
            ".#.",
            ".##",
            "..#",
        ),
    },
    Z: {
        shape(
            "##.",
            ".##",
            "...",
        ),
        shape(
            "..#",
            ".##",
            ".#.",
        ),
    },
    J: {
        shape(
            "#..",
            "###",
            "...",
        ),
        shape(
            ".##",
            ".#.",
            ".#.",
        ),
        shape(
            "...",
            "###",
            "..#",
        ),
        shape(
            ".#.",
            ".#.",
            "##.",
        ),
    },
    L: {
        shape(
            "..#",
            "###",
            "...",
        ),
        shape(
            ".#.",
            ".#.",
            ".##",
        ),
        shape(
            "...",
            "###",
            "#..",
        ),
        shape(
            "##.",
            ".#.",
            ".#.",
        ),
    },
}

// ShapesFor returns the rotation states of t in clockwise order. The slice is
// a copy; unknown types yield nil.
func ShapesFor(t PieceType) []Shape {
    src := catalog[t]
    if src == nil {
        return nil
    }
    out := make([]Shape, len(src))
    copy(out, src)
    return out
}

// InitialShape is the spawn orientation of t.
func InitialShape(t PieceType) Shape {
    return shapeAt(t, 0)
}

func rotationCount(t PieceType) int { return len(catalog[t]) }

func shapeAt(t PieceType, rotation int) Shape {
    states := catalog[t]
    if len(states) == 0 {
        return Shape{}
    }
    return states[rotation]
}
