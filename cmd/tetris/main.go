package main

import (
    "context"
    "errors"
    "flag"
    "log"
    "math/rand"
    "os"
    "os/signal"
    "syscall"

    "github.com/gdamore/tcell/v2"

    "github.com/jaminalder/codex-tetris/internal/config"
    "github.com/jaminalder/codex-tetris/internal/domain"
    "github.com/jaminalder/codex-tetris/internal/sound"
    "github.com/jaminalder/codex-tetris/internal/tui"
)

func main() {
    cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
    if err != nil {
        log.Fatalf("parse config: %v", err)
    }
    log.SetPrefix("[TETRIS] ")

    var player sound.Player = sound.Nop{}
    if cfg.Sound {
        sp, err := sound.NewSpeaker()
        if err != nil {
            log.Printf("audio initialization failed: %v", err)
        } else {
            player = sp
        }
    }
    defer player.Close()

    var rng domain.Randomizer
    if cfg.Seed != 0 {
        rng = rand.New(rand.NewSource(cfg.Seed))
    }

    screen, err := tcell.NewScreen()
    if err != nil {
        log.Fatalf("open terminal: %v", err)
    }
    if err := screen.Init(); err != nil {
        log.Fatalf("init terminal: %v", err)
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    c := tui.New(screen, tui.Options{Rand: rng, Refresh: cfg.Refresh, Sound: player})
    err = c.Run(ctx)
    screen.Fini()
    if err != nil && !errors.Is(err, context.Canceled) {
        log.Printf("run: %v", err)
    }
}
