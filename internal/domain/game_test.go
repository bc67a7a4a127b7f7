package domain

import (
    "testing"
)

// seqRand replays a fixed list of piece types.
type seqRand struct {
    types []PieceType
    i     int
}

func (s *seqRand) Intn(n int) int {
    t := s.types[s.i%len(s.types)]
    s.i++
    return (int(t) - 1) % n
}

func pieces(ts ...PieceType) *seqRand { return &seqRand{types: ts} }

// startedWith returns a playing game whose active piece is cur.
func startedWith(t *testing.T, cur, next PieceType) Game {
    t.Helper()
    g := NewGame(pieces(cur, next)).Start(pieces(cur, next))
    if !g.Playing || g.Current == nil || g.Current.Type != cur {
        t.Fatalf("setup: expected playing game with %v, got %+v", cur, g)
    }
    return g
}

func fillRow(b *Board, row int, skip ...int) {
    for c := 0; c < Width; c++ {
        b[row][c] = J
    }
    for _, c := range skip {
        b[row][c] = Empty
    }
}

func TestNewGameInitialState(t *testing.T) {
    g := NewGame(pieces(T, S))
    if g.State() != Idle {
        t.Fatalf("expected idle, got %v", g.State())
    }
    if g.Playing || g.Paused || g.Over {
        t.Fatalf("expected all flags clear, got %+v", g)
    }
    if g.Current == nil || g.Current.Type != T || g.Next == nil || g.Next.Type != S {
        t.Fatalf("expected T then S drawn, got %v / %v", g.Current, g.Next)
    }
    if g.Board.Filled() != 0 || g.Score != 0 || g.Level != 0 || g.Lines != 0 {
        t.Fatalf("expected empty board and zero counters")
    }
}

func TestCommandsIgnoredWhenIdle(t *testing.T) {
    g := NewGame(pieces(T))
    for _, cmd := range []Command{CmdMoveLeft, CmdMoveRight, CmdSoftDrop, CmdRotateCW, CmdRotateCCW, CmdHardDrop, CmdTick, CmdSpawn, CmdPause} {
        if got := g.Apply(cmd, pieces(I)); got != g {
            t.Fatalf("%v changed an idle game", cmd)
        }
    }
}

func TestStartKeepsDrawnPieces(t *testing.T) {
    g := NewGame(pieces(Z, L))
    g = g.Apply(CmdStart, pieces(I))
    if !g.Playing || g.Paused || g.Over {
        t.Fatalf("expected playing, got %+v", g)
    }
    if g.Current.Type != Z || g.Next.Type != L {
        t.Fatalf("start should keep Z/L, got %v/%v", g.Current.Type, g.Next.Type)
    }
}

func TestStartResetsCounters(t *testing.T) {
    g := startedWith(t, O, O)
    g.Score, g.Lines, g.Level = 500, 23, 2
    g.Board[19][0] = T
    g.Over, g.Playing = true, false
    g = g.Start(pieces(T))
    if g.Score != 0 || g.Lines != 0 || g.Level != 0 || g.Board.Filled() != 0 {
        t.Fatalf("expected reinitialised game, got score=%d lines=%d level=%d filled=%d", g.Score, g.Lines, g.Level, g.Board.Filled())
    }
    if g.Over || !g.Playing {
        t.Fatalf("expected playing after restart")
    }
}

func TestMoveLeftRightAndWalls(t *testing.T) {
    g := startedWith(t, O, O)
    x := g.Current.X
    g = g.Apply(CmdMoveLeft, nil)
    if g.Current.X != x-1 {
        t.Fatalf("expected x=%d, got %d", x-1, g.Current.X)
    }
    for i := 0; i < 20; i++ {
        g = g.Apply(CmdMoveLeft, nil)
    }
    if g.Current.X != 0 {
        t.Fatalf("expected piece stopped at left wall, x=%d", g.Current.X)
    }
    for i := 0; i < 20; i++ {
        g = g.Apply(CmdMoveRight, nil)
    }
    if g.Current.X != Width-2 {
        t.Fatalf("expected piece stopped at right wall, x=%d", g.Current.X)
    }
}

func TestSoftDropNeverLocks(t *testing.T) {
    g := startedWith(t, O, O)
    for i := 0; i < Height+5; i++ {
        g = g.Apply(CmdSoftDrop, nil)
    }
    if g.Current == nil {
        t.Fatalf("soft drop must not lock the piece")
    }
    if g.Current.Y != Height-2 {
        t.Fatalf("expected O resting at y=%d, got %d", Height-2, g.Current.Y)
    }
    if g.Board.Filled() != 0 {
        t.Fatalf("board should be untouched")
    }
}

func TestTickLocksWhenBlocked(t *testing.T) {
    g := startedWith(t, O, T)
    for i := 0; i < Height+1; i++ {
        g = g.Apply(CmdTick, nil)
        if g.Current == nil {
            break
        }
    }
    if g.Current != nil {
        t.Fatalf("expected piece locked after falling")
    }
    if g.Board[19][4] != O || g.Board[19][5] != O || g.Board[18][4] != O || g.Board[18][5] != O {
        t.Fatalf("expected O locked in columns 4-5 of the bottom rows")
    }
    if !g.NeedsSpawn() {
        t.Fatalf("expected game waiting for spawn")
    }
    g = g.Apply(CmdSpawn, pieces(S))
    if g.Current == nil || g.Current.Type != T || g.Next.Type != S {
        t.Fatalf("expected T promoted and S queued, got %v / %v", g.Current, g.Next)
    }
}

func TestHardDropIPieceOnEmptyBoard(t *testing.T) {
    g := startedWith(t, I, O)
    if !g.Board.IsValid(*g.Current) {
        t.Fatalf("spawned I should be valid")
    }
    g = g.Apply(CmdHardDrop, nil)
    if g.Current != nil {
        t.Fatalf("hard drop should lock")
    }
    for c := 3; c < 7; c++ {
        if g.Board[19][c] != I {
            t.Fatalf("expected I at row 19 col %d", c)
        }
    }
    if g.Board.Filled() != 4 || g.Lines != 0 || g.Score != 0 {
        t.Fatalf("expected 4 cells, no lines, no score; got filled=%d lines=%d score=%d", g.Board.Filled(), g.Lines, g.Score)
    }
}

func TestHardDropClearsTwoLinesWithO(t *testing.T) {
    for _, level := range []int{0, 1, 3} {
        g := startedWith(t, O, T)
        g.Lines = level * LinesPerLevel
        g.Level = level
        fillRow(&g.Board, 18, 0, 1)
        fillRow(&g.Board, 19, 0, 1)
        g.Board[17][9] = S
        for i := 0; i < 5; i++ {
            g = g.Apply(CmdMoveLeft, nil)
        }
        before := g.Score
        g = g.Apply(CmdHardDrop, nil)
        if got := g.Score - before; got != 100*(level+1) {
            t.Fatalf("level %d: expected +%d, got +%d", level, 100*(level+1), got)
        }
        if g.Lines != level*LinesPerLevel+2 {
            t.Fatalf("level %d: expected lines %d, got %d", level, level*LinesPerLevel+2, g.Lines)
        }
        if g.Board.Filled() != 1 || g.Board[19][9] != S {
            t.Fatalf("level %d: expected only the shifted S cell to remain", level)
        }
    }
}

func TestLevelUsesLinesBeforeClear(t *testing.T) {
    g := startedWith(t, I, O)
    g.Lines, g.Level = 9, 0
    fillRow(&g.Board, 19, 3, 4, 5, 6)
    g = g.HardDrop()
    if g.Lines != 10 || g.Level != 1 {
        t.Fatalf("expected lines=10 level=1, got %d/%d", g.Lines, g.Level)
    }
    if g.Score != 40 {
        t.Fatalf("single at level 0 should score 40, got %d", g.Score)
    }
}

func TestPauseSuppressesTicks(t *testing.T) {
    g := startedWith(t, T, O)
    g = g.Apply(CmdTick, nil)
    g = g.Apply(CmdPause, nil)
    if g.State() != Paused {
        t.Fatalf("expected paused, got %v", g.State())
    }
    board, cur := g.Board, *g.Current
    for i := 0; i < 50; i++ {
        g = g.Apply(CmdTick, nil)
        g = g.Apply(CmdHardDrop, nil)
        g = g.Apply(CmdMoveLeft, nil)
    }
    if g.Board != board || *g.Current != cur {
        t.Fatalf("paused game changed")
    }
    g = g.Apply(CmdPause, nil)
    if g.State() != Playing {
        t.Fatalf("expected resume, got %v", g.State())
    }
    g = g.Apply(CmdTick, nil)
    if g.Current.Y != cur.Y+1 {
        t.Fatalf("expected gravity after resume")
    }
}

func TestPauseIgnoredWhenNotPlaying(t *testing.T) {
    g := NewGame(pieces(T))
    if g.TogglePause().Paused {
        t.Fatalf("idle game must not pause")
    }
    g.Over = true
    if g.TogglePause().Paused {
        t.Fatalf("finished game must not pause")
    }
}

func TestSpawnIntoStackEndsGame(t *testing.T) {
    g := startedWith(t, I, T)
    g.Current = nil
    for r := 0; r < Height; r++ {
        fillRow(&g.Board, r, 0)
    }
    g = g.Apply(CmdSpawn, pieces(O))
    if !g.Over || g.Playing {
        t.Fatalf("expected game over, got %+v", g.State())
    }
    if g.State() != GameOver {
        t.Fatalf("expected GameOver state, got %v", g.State())
    }
    for _, cmd := range []Command{CmdTick, CmdHardDrop, CmdPause, CmdSpawn} {
        if got := g.Apply(cmd, pieces(O)); got != g {
            t.Fatalf("%v changed a finished game", cmd)
        }
    }
}

func TestSpawnOverlapOnVisibleRows(t *testing.T) {
    g := startedWith(t, I, O)
    g.Current = nil
    next := Spawn(O).Move(0, 6)
    g.Next = &next
    g.Board[5][4] = L
    g = g.SpawnNext(pieces(T))
    if !g.Over {
        t.Fatalf("expected overlap on visible rows to end the game")
    }
}

func TestSpawnWithRoomSucceeds(t *testing.T) {
    g := startedWith(t, I, O)
    g.Current = nil
    fillRow(&g.Board, 19, 0)
    g.Board[1][0] = Z
    g = g.SpawnNext(pieces(T))
    if g.Over || g.Current == nil || g.Current.Type != O {
        t.Fatalf("expected O spawned, got over=%v cur=%v", g.Over, g.Current)
    }
}

func TestLockAboveBoardDropsCells(t *testing.T) {
    g := startedWith(t, I, O)
    for r := 0; r < Height; r++ {
        fillRow(&g.Board, r, 3, 4, 5, 6)
        g.Board[r][4] = T
    }
    // the I hits column 4 before any of its cells reach row 0
    for i := 0; i < 5 && g.Current != nil; i++ {
        g = g.Drop()
    }
    if g.Current != nil {
        t.Fatalf("expected lock while above the board")
    }
    if g.Over {
        t.Fatalf("locking above the board is not itself game over")
    }
    if g.Board.Filled() != Height*7 {
        t.Fatalf("expected off-board cells dropped, filled=%d", g.Board.Filled())
    }
}

func TestRotateWithWallKick(t *testing.T) {
    g := startedWith(t, T, O)
    g = g.RotatePiece(true)
    for i := 0; i < 10; i++ {
        g = g.MovePiece(-1, 0)
    }
    for i := 0; i < 5; i++ {
        g = g.MovePiece(0, 1)
    }
    if g.Current.X != -1 || g.Current.Rotation != 1 {
        t.Fatalf("setup: expected T state 1 at x=-1, got %+v", *g.Current)
    }
    g = g.Apply(CmdRotateCW, nil)
    if g.Current.Rotation != 2 || g.Current.X != 0 {
        t.Fatalf("expected kick to x=0 in state 2, got %+v", *g.Current)
    }
}

func TestRotateRejectedKeepsPiece(t *testing.T) {
    g := startedWith(t, I, O)
    g = g.RotatePiece(true)
    for i := 0; i < Height+4; i++ {
        g = g.MovePiece(0, 1)
    }
    cur := *g.Current
    for r := 10; r < Height; r++ {
        fillRow(&g.Board, r, cur.X+2)
    }
    got := g.Apply(CmdRotateCCW, nil)
    if *got.Current != cur {
        t.Fatalf("expected rotation rejected, got %+v", *got.Current)
    }
}

func TestResetReturnsIdle(t *testing.T) {
    g := startedWith(t, T, O)
    g = g.HardDrop()
    g = g.Apply(CmdReset, pieces(S, Z))
    if g.State() != Idle || g.Board.Filled() != 0 {
        t.Fatalf("expected fresh idle game")
    }
    if g.Current.Type != S || g.Next.Type != Z {
        t.Fatalf("expected new pieces S/Z, got %v/%v", g.Current.Type, g.Next.Type)
    }
}

func TestViewDoesNotTouchBoard(t *testing.T) {
    g := startedWith(t, O, I)
    g = g.MovePiece(0, 3)
    v := g.View()
    if g.Board.Filled() != 0 {
        t.Fatalf("view wrote into the board")
    }
    if v.Overlays[1][4] != OverlayActive || v.Cells[1][4] != O {
        t.Fatalf("expected active overlay at (1,4)")
    }
    if v.Overlays[19][4] != OverlayGhost || v.Overlays[18][5] != OverlayGhost {
        t.Fatalf("expected ghost at the bottom")
    }
    if v.NextType != I || !v.Next.At(1, 0) {
        t.Fatalf("expected next I shape")
    }
    if v.State != Playing {
        t.Fatalf("expected playing view, got %v", v.State)
    }
}

func TestCommandNames(t *testing.T) {
    for c := CmdStart; c <= CmdSpawn; c++ {
        got, ok := CommandByName(c.String())
        if !ok || got != c {
            t.Fatalf("round trip failed for %v", c)
        }
    }
    if _, ok := CommandByName("none"); ok {
        t.Fatalf("none must not parse")
    }
}
