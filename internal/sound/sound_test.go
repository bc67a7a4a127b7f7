package sound

import (
    "testing"
    "time"

    "github.com/gopxl/beep"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/jaminalder/codex-tetris/internal/domain"
)

func drain(t *testing.T, s beep.Streamer) int {
    t.Helper()
    buf := make([][2]float64, 512)
    total := 0
    for {
        n, ok := s.Stream(buf)
        total += n
        if !ok {
            return total
        }
    }
}

func TestClearCueLength(t *testing.T) {
    note := sampleRate.N(noteLength)
    for n := 1; n <= 4; n++ {
        cue := clearCue(n)
        require.NotNil(t, cue)
        assert.Equal(t, n*note, drain(t, cue), "lines=%d", n)
    }
    assert.Nil(t, clearCue(0))
    assert.Equal(t, 4*note, drain(t, clearCue(9)), "capped at four notes")
}

func TestGameOverCueLength(t *testing.T) {
    want := sampleRate.N(150*time.Millisecond) + sampleRate.N(300*time.Millisecond)
    assert.Equal(t, want, drain(t, gameOverCue()))
}

type recorder struct {
    lines []int
    over  int
}

func (r *recorder) LinesCleared(n int) { r.lines = append(r.lines, n) }
func (r *recorder) GameOver()          { r.over++ }
func (r *recorder) Close()             {}

func TestObserve(t *testing.T) {
    var r recorder
    prev := domain.Game{Lines: 3, Playing: true}

    Observe(&r, prev, prev)
    assert.Empty(t, r.lines)

    next := prev
    next.Lines = 5
    Observe(&r, prev, next)
    assert.Equal(t, []int{2}, r.lines)

    over := next
    over.Over, over.Playing = true, false
    Observe(&r, next, over)
    Observe(&r, over, over)
    assert.Equal(t, 1, r.over)

    var p Player = Nop{}
    Observe(p, prev, over)
}
