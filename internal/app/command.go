package app

import (
    "fmt"

    "github.com/jaminalder/codex-tetris/internal/domain"
)

// ParseCommand maps a wire name such as "left" or "rotate-ccw" to a player
// command. Scheduler-only commands (tick, spawn) are rejected.
func ParseCommand(name string) (domain.Command, error) {
    cmd, ok := domain.CommandByName(name)
    if !ok || cmd == domain.CmdTick || cmd == domain.CmdSpawn {
        return domain.CmdNone, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
    }
    return cmd, nil
}
