package web

import (
    "bytes"
    "html/template"

    "github.com/jaminalder/codex-tetris/internal/app"
    "github.com/jaminalder/codex-tetris/internal/domain"
)

type templates struct {
    base  *template.Template
    game  *template.Template
    board *template.Template
    index *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "pieceName": func(t domain.PieceType) string {
            if t == domain.Empty {
                return ""
            }
            return t.String()
        },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tetris</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.grid{display:inline-block;border:2px solid #444}
.row{display:flex}
.cell{width:20px;height:20px;border:1px solid #222;background:#111}
.ghost{opacity:.35}
.t-I{background:#0ff}.t-O{background:#ff0}.t-T{background:#a0f}.t-S{background:#0f0}
.t-Z{background:#f00}.t-J{background:#00f}.t-L{background:#fa0}
</style>
</head><body>{{template "content" .}}</body></html>`))
    // Define the board template within the same set so game can include it
    template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tetris</h1><form action="/game" method="post"><button>New game</button></form>`))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="board-slot" sse-swap="board" hx-target="#board" hx-swap="outerHTML">{{template "board" .}}</div>
</div>
<p>Arrows move, Up/Z rotate, X rotate back, Space drops, P pauses.</p>
<script>
const keys = {ArrowLeft:"left",ArrowRight:"right",ArrowDown:"down",ArrowUp:"rotate",z:"rotate",Z:"rotate",x:"rotate-ccw",X:"rotate-ccw"," ":"drop",p:"pause",P:"pause"};
document.addEventListener("keydown", function(ev) {
  const cmd = keys[ev.key];
  if (!cmd) { return; }
  ev.preventDefault();
  htmx.ajax("POST", "/game/{{.ID}}/command", {target: "#board", swap: "outerHTML", values: {cmd: cmd}});
});
</script>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const boardTemplate = `
<div id="board" class="{{.State}}">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="stats">
    <span class="score">Score {{.Score}}</span>
    <span class="level">Level {{.Level}}</span>
    <span class="lines">Lines {{.Lines}}</span>
    <span class="status">{{.Status}}</span>
  </div>
  <div class="grid">
    {{range .Rows}}<div class="row">{{range .}}<span class="{{.}}"></span>{{end}}</div>
    {{end}}
  </div>
  <div class="next" data-piece="{{pieceName .NextType}}">
    {{range .Next}}<div class="row">{{range .}}<span class="{{.}}"></span>{{end}}</div>
    {{end}}
  </div>
  <div class="controls">
    {{range .Buttons}}
    <form hx-post="/game/{{$.ID}}/command" hx-target="#board" hx-swap="outerHTML" method="post">
      <input type="hidden" name="cmd" value="{{.Cmd}}">
      <button type="submit">{{.Label}}</button>
    </form>
    {{end}}
  </div>
</div>
`

type button struct{ Cmd, Label string }

// boardData is the template model for one board fragment.
type boardData struct {
    ID       string
    Error    string
    State    string
    Status   string
    Score    int
    Level    int
    Lines    int
    Rows     [][]string
    Next     [][]string
    NextType domain.PieceType
    Buttons  []button
}

func newBoardData(gs app.GameState, errMsg string) boardData {
    v := gs.Game.View()
    d := boardData{
        ID:       gs.ID,
        Error:    errMsg,
        State:    v.State.String(),
        Status:   statusText(v.State),
        Score:    v.Score,
        Level:    v.Level,
        Lines:    v.Lines,
        NextType: v.NextType,
        Rows:     make([][]string, domain.Height),
    }
    for r := range d.Rows {
        row := make([]string, domain.Width)
        for c := range row {
            row[c] = cellClass(v.Cells[r][c], v.Overlays[r][c])
        }
        d.Rows[r] = row
    }
    for r := 0; r < v.Next.Size; r++ {
        row := make([]string, v.Next.Size)
        for c := range row {
            if v.Next.At(r, c) {
                row[c] = cellClass(v.NextType, domain.OverlayNone)
            } else {
                row[c] = cellClass(domain.Empty, domain.OverlayNone)
            }
        }
        d.Next = append(d.Next, row)
    }
    switch v.State {
    case domain.Playing:
        d.Buttons = []button{{"pause", "Pause"}, {"reset", "Reset"}}
    case domain.Paused:
        d.Buttons = []button{{"pause", "Resume"}, {"reset", "Reset"}}
    default:
        d.Buttons = []button{{"start", "Start"}, {"reset", "Reset"}}
    }
    return d
}

func cellClass(t domain.PieceType, o domain.Overlay) string {
    switch {
    case t == domain.Empty:
        return "cell"
    case o == domain.OverlayGhost:
        return "cell ghost t-" + t.String()
    case o == domain.OverlayActive:
        return "cell active t-" + t.String()
    default:
        return "cell t-" + t.String()
    }
}

func statusText(s domain.State) string {
    switch s {
    case domain.Playing:
        return "Playing"
    case domain.Paused:
        return "Paused"
    case domain.GameOver:
        return "Game over"
    default:
        return "Press start"
    }
}
