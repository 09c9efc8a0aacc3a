package tui

// Key binding constants used in handleKey.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyUp        = "up"
	keyDown      = "down"
	keyJ         = "j"
	keyK         = "k"
	keyTop       = "g"
	keyBottom    = "G"
	keyEnter     = "enter"
	keySpace     = " "
	keyKeep      = "a"
	keyCut       = "x"
	keyReason    = "r"
	keyNote      = "n"
	keySave      = "s"
	keyEsc       = "esc"
	keyBackspace = "backspace"
)
