// Package sound plays short cues for game events.
package sound

import (
    "sync"
    "time"

    "github.com/gopxl/beep"
    "github.com/gopxl/beep/generators"
    "github.com/gopxl/beep/speaker"

    "github.com/jaminalder/codex-tetris/internal/domain"
)

const sampleRate = beep.SampleRate(44100)

// Player receives game events worth a sound.
type Player interface {
    LinesCleared(n int)
    GameOver()
    Close()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) LinesCleared(int) {}
func (Nop) GameOver()        {}
func (Nop) Close()           {}

// Speaker plays cues on the default audio device.
type Speaker struct {
    mu     sync.Mutex
    closed bool
}

// NewSpeaker initialises the audio device. Callers usually fall back to Nop
// on error; the game runs fine without sound.
func NewSpeaker() (*Speaker, error) {
    if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
        return nil, err
    }
    return &Speaker{}, nil
}

func (s *Speaker) play(st beep.Streamer) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.closed || st == nil {
        return
    }
    speaker.Play(st)
}

// LinesCleared plays a rising arpeggio, one note per line.
func (s *Speaker) LinesCleared(n int) { s.play(clearCue(n)) }

// GameOver plays a falling two-note cue.
func (s *Speaker) GameOver() { s.play(gameOverCue()) }

// Close stops playback and releases the device.
func (s *Speaker) Close() {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.closed {
        return
    }
    s.closed = true
    speaker.Clear()
    speaker.Close()
}

var clearNotes = [...]float64{523.25, 659.25, 783.99, 1046.5}

const noteLength = 60 * time.Millisecond

func tone(freq float64, d time.Duration) beep.Streamer {
    sine, err := generators.SineTone(sampleRate, freq)
    if err != nil {
        return nil
    }
    return beep.Take(sampleRate.N(d), sine)
}

func clearCue(n int) beep.Streamer {
    if n <= 0 {
        return nil
    }
    if n > len(clearNotes) {
        n = len(clearNotes)
    }
    notes := make([]beep.Streamer, 0, n)
    for _, f := range clearNotes[:n] {
        notes = append(notes, tone(f, noteLength))
    }
    return seq(notes...)
}

func gameOverCue() beep.Streamer {
    return seq(tone(392, 150*time.Millisecond), tone(196, 300*time.Millisecond))
}

// seq chains the non-nil streamers.
func seq(ss ...beep.Streamer) beep.Streamer {
    out := ss[:0]
    for _, s := range ss {
        if s != nil {
            out = append(out, s)
        }
    }
    if len(out) == 0 {
        return nil
    }
    return beep.Seq(out...)
}

// Observe compares two consecutive states and plays the matching cues.
func Observe(p Player, prev, next domain.Game) {
    if next.Lines > prev.Lines {
        p.LinesCleared(next.Lines - prev.Lines)
    }
    if next.Over && !prev.Over {
        p.GameOver()
    }
}
