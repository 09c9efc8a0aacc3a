// Package tui implements the terminal segment review screen: a segment
// list synchronized to a simulated playhead, per-segment keep/cut
// overrides, live agreement statistics, and explicit save.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clipworks/reelcut/internal/api"
	"github.com/clipworks/reelcut/internal/playback"
	"github.com/clipworks/reelcut/internal/review"
)

// tickInterval is the playhead update cadence.
const tickInterval = 200 * time.Millisecond

// Model is the root bubbletea model for the review screen.
type Model struct {
	projectName string

	store *review.Store
	clock *playback.Clock
	sync  *playback.Synchronizer

	// List state
	cursor int // selected list position
	scroll int // first visible list position

	// Note editing
	editingNote bool
	noteBuffer  string

	// Async save
	saving bool

	// UI state
	width      int
	height     int
	statusText string
	errorText  string
	quitArmed  bool // quit pressed once with unsaved edits
}

// New creates the review screen model. The store must already be merged
// and the clock sized to the source duration.
func New(projectName string, store *review.Store, clock *playback.Clock) *Model {
	m := &Model{
		projectName: projectName,
		store:       store,
		clock:       clock,
	}
	m.sync = playback.NewSynchronizer(clock, store.Segments(), m.scrollTo)
	return m
}

// Init starts the playhead ticker.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// saveCmd submits the evaluation off the update loop.
func saveCmd(store *review.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return saveDoneMsg{err: store.Save(ctx)}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.clock.Advance(time.Time(msg))
		m.sync.TimeUpdate()
		return m, tickCmd()

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.errorText = msg.err.Error()
			return m, clearStatusCmd()
		}
		m.statusText = "Saved"
		return m, clearStatusCmd()

	case clearStatusMsg:
		m.statusText = ""
		m.errorText = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.editingNote {
		return m.handleNoteKey(msg)
	}

	// A second quit press while edits are unsaved confirms the quit.
	if key != keyQuit && key != keyCtrlC {
		m.quitArmed = false
	}

	switch key {
	case keyCtrlC:
		return m, tea.Quit

	case keyQuit:
		if m.store.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.errorText = "Unsaved changes: press q again to discard, s to save"
			return m, nil
		}
		return m, tea.Quit

	case keyDown, keyJ:
		m.moveCursor(1)

	case keyUp, keyK:
		m.moveCursor(-1)

	case keyTop:
		m.cursor = 0
		m.ensureVisible()

	case keyBottom:
		m.cursor = m.store.Len() - 1
		m.ensureVisible()

	case keyEnter:
		if seg, ok := m.selected(); ok {
			m.sync.PlaySegment(seg)
		}

	case keySpace:
		if m.clock.Playing() {
			m.clock.Pause()
		} else {
			m.clock.Play()
		}

	case keyKeep:
		if seg, ok := m.selected(); ok {
			m.store.SetAction(seg.Index, api.ActionKeep)
		}

	case keyCut:
		if seg, ok := m.selected(); ok {
			m.store.SetAction(seg.Index, api.ActionCut)
		}

	case keyReason:
		m.cycleReason()

	case keyNote:
		if seg, ok := m.selected(); ok && seg.Human != nil {
			m.editingNote = true
			m.noteBuffer = seg.Human.Note
		}

	case keySave:
		if m.store.Dirty() && !m.saving {
			m.saving = true
			m.errorText = ""
			return m, saveCmd(m.store)
		}
	}

	return m, nil
}

// handleNoteKey edits the note buffer for the selected segment. Enter
// commits through the store mutator; esc discards.
func (m *Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		if seg, ok := m.selected(); ok {
			m.store.SetNote(seg.Index, m.noteBuffer)
		}
		m.editingNote = false
	case keyEsc:
		m.editingNote = false
		m.noteBuffer = ""
	case keyBackspace:
		if len(m.noteBuffer) > 0 {
			runes := []rune(m.noteBuffer)
			m.noteBuffer = string(runes[:len(runes)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.noteBuffer += string(msg.Runes)
		case tea.KeySpace:
			m.noteBuffer += " "
		}
	}
	return m, nil
}

// cycleReason steps the selected segment's reason through its action's
// vocabulary, wrapping back to unset.
func (m *Model) cycleReason() {
	seg, ok := m.selected()
	if !ok || seg.Human == nil {
		return
	}
	vocab := review.ReasonsFor(seg.Human.Action)
	next := ""
	if seg.Human.Reason == "" {
		next = vocab[0]
	} else {
		for i, r := range vocab {
			if r == seg.Human.Reason && i+1 < len(vocab) {
				next = vocab[i+1]
				break
			}
		}
	}
	m.store.SetReason(seg.Index, next)
}

func (m *Model) selected() (api.Segment, bool) {
	segs := m.store.Segments()
	if m.cursor < 0 || m.cursor >= len(segs) {
		return api.Segment{}, false
	}
	return segs[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > m.store.Len()-1 {
		m.cursor = m.store.Len() - 1
	}
	m.ensureVisible()
}

// scrollTo brings the currently playing segment into view. Registered as
// the synchronizer's change hook.
func (m *Model) scrollTo(listPos int) {
	if listPos == playback.NoSegment {
		return
	}
	m.cursor = listPos
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	visible := m.listHeight()
	if visible < 1 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
