package tui

import "time"

// tickMsg advances the playhead clock. Emitted on a fixed cadence while
// the screen is open; each tick is forwarded to the synchronizer as a
// time update.
type tickMsg time.Time

// saveDoneMsg reports the outcome of an async evaluation save.
type saveDoneMsg struct {
	err error
}

// clearStatusMsg clears a transient status line after a delay.
type clearStatusMsg struct{}
