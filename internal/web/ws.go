package web

import (
    "context"
    "encoding/json"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "nhooyr.io/websocket"
    "nhooyr.io/websocket/wsjson"

    "github.com/jaminalder/codex-tetris/internal/app"
)

// wsMessage is the envelope for both directions on the game socket.
// Clients send {"t":"cmd","cmd":"left"}; the server answers with "state"
// and "error" messages.
type wsMessage struct {
    T     string    `json:"t"`
    Cmd   string    `json:"cmd,omitempty"`
    Error string    `json:"error,omitempty"`
    State *snapshot `json:"state,omitempty"`
}

var wsWriteTimeout = 5 * time.Second

func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    gs, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    c, err := websocket.Accept(w, r, nil)
    if err != nil {
        return
    }
    defer c.Close(websocket.StatusNormalClosure, "bye")

    ctx, cancel := context.WithCancel(r.Context())
    defer cancel()

    send := func(m wsMessage) error {
        wctx, wcancel := context.WithTimeout(ctx, wsWriteTimeout)
        defer wcancel()
        return wsjson.Write(wctx, c, m)
    }
    sendState := func(gs app.GameState) error {
        snap := newSnapshot(gs)
        return send(wsMessage{T: "state", State: &snap})
    }

    updates, unsub := h.svc.Subscribe(ctx, id)
    defer unsub()
    if err := sendState(*gs); err != nil {
        return
    }

    // writer: push every broadcast as a fresh snapshot
    go func() {
        defer cancel()
        ping := time.NewTicker(heartbeatInterval)
        defer ping.Stop()
        for {
            select {
            case <-ctx.Done():
                return
            case _, ok := <-updates:
                if !ok {
                    return
                }
                latest, found := h.svc.Get(id)
                if !found || sendState(*latest) != nil {
                    return
                }
            case <-ping.C:
                if c.Ping(ctx) != nil {
                    return
                }
            }
        }
    }()

    // reader
    for {
        _, data, err := c.Read(ctx)
        if err != nil {
            return
        }
        var m wsMessage
        if err := json.Unmarshal(data, &m); err != nil || m.T != "cmd" {
            _ = send(wsMessage{T: "error", Error: "bad message"})
            continue
        }
        cmd, err := app.ParseCommand(m.Cmd)
        if err != nil {
            _ = send(wsMessage{T: "error", Error: err.Error()})
            continue
        }
        if _, err := h.svc.Do(id, cmd); err != nil {
            _ = send(wsMessage{T: "error", Error: err.Error()})
        }
    }
}
