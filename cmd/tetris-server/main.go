package main

import (
    "context"
    "errors"
    "flag"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/jaminalder/codex-tetris/internal/app"
    "github.com/jaminalder/codex-tetris/internal/config"
    "github.com/jaminalder/codex-tetris/internal/web"
)

func main() {
    cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
    if err != nil {
        log.Fatalf("parse config: %v", err)
    }
    log.SetPrefix("[TETRIS] ")
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    svc := app.New(app.Options{Seed: cfg.Seed, Refresh: cfg.Refresh, Logger: log.Default()})
    defer svc.Close()

    srv := &http.Server{Addr: cfg.Addr, Handler: web.NewServer(svc)}
    go func() {
        <-ctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := srv.Shutdown(shutdownCtx); err != nil {
            log.Printf("shutdown: %v", err)
        }
    }()

    log.Printf("listening on %s", cfg.Addr)
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
        log.Fatalf("failed to serve: %v", err)
    }
}
