package client

import (
	"picotet/tetris"

	"github.com/eiannone/keyboard"
)

// keyAction maps a key press to an action. Once the game is over the only
// way to keep playing is a restart, any other key quits.
func keyAction(e keyboard.KeyEvent, over bool) tetris.Action {
	if over {
		if e.Rune == 'r' || e.Rune == 'R' {
			return tetris.Restart
		}
		return tetris.Quit
	}
	switch {
	case e.Key == keyboard.KeyArrowLeft || e.Rune == 'h' || e.Rune == 'a':
		return tetris.MoveLeft
	case e.Key == keyboard.KeyArrowRight || e.Rune == 'l' || e.Rune == 'd':
		return tetris.MoveRight
	case e.Key == keyboard.KeyArrowDown || e.Rune == 'j' || e.Rune == 's':
		return tetris.SoftDrop
	case e.Key == keyboard.KeyArrowUp || e.Key == keyboard.KeySpace || e.Rune == 'f':
		return tetris.RotateCW
	case e.Key == keyboard.KeyEnter || e.Rune == 'k' || e.Rune == 'w':
		return tetris.HardDrop
	case e.Rune == 'r' || e.Rune == 'R':
		return tetris.Restart
	case e.Key == keyboard.KeyCtrlC || e.Key == keyboard.KeyEsc || e.Rune == 'c' || e.Rune == 'q':
		return tetris.Quit
	}
	return tetris.NoOp
}
