package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clipworks/reelcut/internal/api"
	"github.com/clipworks/reelcut/internal/cli"
)

// Fixed rows above and below the segment list: header, playhead, stats,
// note/error line, footer.
const chromeRows = 5

func (m *Model) listHeight() int {
	h := m.height - chromeRows
	if h < 1 {
		return 1
	}
	return h
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPlayhead())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderSegments())
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("reelcut review: " + m.projectName)
	if m.store.Dirty() {
		title += "  " + dirtyStyle.Render("● unsaved")
	}
	if m.saving {
		title += "  " + statusStyle.Render("saving...")
	}
	return title
}

func (m *Model) renderPlayhead() string {
	pos := cli.FormatMilliseconds(m.clock.CurrentTimeMS())
	dur := cli.FormatMilliseconds(m.clock.DurationMS())
	state := "⏸"
	if m.clock.Playing() {
		state = "▶"
	}
	line := fmt.Sprintf("%s %s / %s", state, pos, dur)
	if m.sync.BoundaryArmed() {
		line += statusStyle.Render("  (stops at segment end)")
	}
	return timecodeStyle.Render(line)
}

func (m *Model) renderStats() string {
	st := m.store.Stats()
	return statusStyle.Render(fmt.Sprintf(
		"segments %d  reviewed %d  ai-cut %d  agreement %.0f%%",
		st.Total, st.Reviewed, st.AICut, st.AgreementRate*100))
}

func (m *Model) renderSegments() string {
	segs := m.store.Segments()
	current := m.sync.CurrentIndex()
	height := m.listHeight()

	var b strings.Builder
	for pos := m.scroll; pos < len(segs) && pos < m.scroll+height; pos++ {
		b.WriteString(m.renderSegmentRow(segs[pos], pos, pos == current))
		b.WriteString("\n")
	}
	// Pad so the footer stays anchored.
	for i := len(segs) - m.scroll; i < height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSegmentRow(seg api.Segment, pos int, isCurrent bool) string {
	marker := "  "
	if pos == m.cursor {
		marker = "> "
	}

	span := timecodeStyle.Render(fmt.Sprintf("%s-%s",
		cli.FormatMilliseconds(seg.StartMS), cli.FormatMilliseconds(seg.EndMS)))

	aiBadge := keepBadgeStyle.Render("AI:keep")
	if seg.AI != nil && seg.AI.Action == api.ActionCut {
		aiBadge = cutBadgeStyle.Render("AI:cut")
	}

	human := statusStyle.Render("·")
	if seg.Human != nil {
		label := fmt.Sprintf("me:%s", seg.Human.Action)
		if seg.Human.Reason != "" {
			label += "/" + seg.Human.Reason
		}
		if seg.AI != nil && seg.Human.Action != seg.AI.Action {
			human = disagreeStyle.Render(label)
		} else if seg.Human.Action == api.ActionCut {
			human = cutBadgeStyle.Render(label)
		} else {
			human = keepBadgeStyle.Render(label)
		}
	}

	text := seg.Text
	if maxText := m.width - 40; maxText > 0 {
		if runes := []rune(text); len(runes) > maxText {
			text = string(runes[:maxText]) + "…"
		}
	}

	row := fmt.Sprintf("%s#%-4d %s %s %s  %s", marker, seg.Index, span, aiBadge, human, text)
	switch {
	case isCurrent:
		return currentStyle.Render(row)
	case pos == m.cursor:
		return selectedStyle.Render(row)
	default:
		return row
	}
}

func (m *Model) renderStatusLine() string {
	if m.editingNote {
		return notePromptStyle.Render("note: " + m.noteBuffer + "▌  (enter to set, esc to cancel)")
	}
	if m.errorText != "" {
		return errorStyle.Render(m.errorText)
	}
	if m.statusText != "" {
		return statusStyle.Render(m.statusText)
	}
	return ""
}

func (m *Model) renderFooter() string {
	help := "j/k move  enter play segment  space play/pause  a keep  x cut  r reason  n note  s save  q quit"
	return footerStyle.Render(lipgloss.NewStyle().Width(m.width).Render(help))
}
