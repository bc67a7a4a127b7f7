package domain

// Command is a logical input to the game.
type Command uint8

const (
    CmdNone Command = iota
    CmdStart
    CmdPause
    CmdReset
    CmdMoveLeft
    CmdMoveRight
    CmdSoftDrop
    CmdRotateCW
    CmdRotateCCW
    CmdHardDrop
    CmdTick
    CmdSpawn
)

var commandNames = [...]string{
    CmdNone:      "none",
    CmdStart:     "start",
    CmdPause:     "pause",
    CmdReset:     "reset",
    CmdMoveLeft:  "left",
    CmdMoveRight: "right",
    CmdSoftDrop:  "down",
    CmdRotateCW:  "rotate",
    CmdRotateCCW: "rotate-ccw",
    CmdHardDrop:  "drop",
    CmdTick:      "tick",
    CmdSpawn:     "spawn",
}

func (c Command) String() string {
    if int(c) < len(commandNames) {
        return commandNames[c]
    }
    return "unknown"
}

// CommandByName looks up a command by its String form.
func CommandByName(name string) (Command, bool) {
    for i, n := range commandNames {
        if n == name && Command(i) != CmdNone {
            return Command(i), true
        }
    }
    return CmdNone, false
}
