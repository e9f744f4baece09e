package tetris

import "time"

// Clock pauses the engine between the phases of a line clear.
type Clock interface {
	Sleep(time.Duration)
}

type wallClock struct{}

func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }
