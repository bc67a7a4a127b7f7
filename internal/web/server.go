package web

import (
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/jaminalder/codex-tetris/internal/app"
)

// NewServer wires routes and returns an http.Handler. It also installs the
// board fragment renderer used for SSE broadcasts.
func NewServer(s *app.Service) http.Handler {
    r := chi.NewRouter()
    h := &handlers{svc: s, tpl: loadTemplates()}
    s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })
    r.Get("/", h.index)
    r.Get("/health", h.health)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/command", h.command)
        r.Get("/state", h.state)
        r.Get("/events", h.events)
        r.Get("/ws", h.socket)
    })
    return r
}
