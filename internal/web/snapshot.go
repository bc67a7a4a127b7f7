package web

import (
    "strings"

    "github.com/jaminalder/codex-tetris/internal/app"
    "github.com/jaminalder/codex-tetris/internal/domain"
)

// snapshot is the JSON form of a game for the state endpoint and the
// websocket. Rows use one character per cell: '.' empty, the piece letter
// for locked and active cells, the lower-case letter for the ghost.
type snapshot struct {
    ID      string   `json:"id"`
    State   string   `json:"state"`
    Score   int      `json:"score"`
    Level   int      `json:"level"`
    Lines   int      `json:"lines"`
    Playing bool     `json:"playing"`
    Paused  bool     `json:"paused"`
    Over    bool     `json:"gameOver"`
    Rows    []string `json:"rows"`
    Next    string   `json:"next,omitempty"`
    // DropMillis is the current gravity period.
    DropMillis int64 `json:"dropMillis"`
}

func newSnapshot(gs app.GameState) snapshot {
    v := gs.Game.View()
    s := snapshot{
        ID:         gs.ID,
        State:      v.State.String(),
        Score:      v.Score,
        Level:      v.Level,
        Lines:      v.Lines,
        Playing:    v.Playing,
        Paused:     v.Paused,
        Over:       v.Over,
        Rows:       make([]string, domain.Height),
        DropMillis: domain.DropInterval(v.Level).Milliseconds(),
    }
    if v.NextType != domain.Empty {
        s.Next = v.NextType.String()
    }
    var sb strings.Builder
    for r := 0; r < domain.Height; r++ {
        sb.Reset()
        for c := 0; c < domain.Width; c++ {
            t := v.Cells[r][c]
            switch {
            case t == domain.Empty:
                sb.WriteByte('.')
            case v.Overlays[r][c] == domain.OverlayGhost:
                sb.WriteString(strings.ToLower(t.String()))
            default:
                sb.WriteString(t.String())
            }
        }
        s.Rows[r] = sb.String()
    }
    return s
}
