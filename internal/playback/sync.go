// Package playback binds a media time cursor to the segment sequence: it
// maintains the currently playing segment for highlighting and supports
// play-only-this-segment with an auto-stop boundary.
package playback

import (
	"github.com/rs/zerolog/log"

	"github.com/clipworks/reelcut/internal/api"
)

// NoSegment is the current-index value when the cursor is in a gap or
// past the end of the sequence.
const NoSegment = -1

// Player is the media element the synchronizer drives. The player owns
// the time cursor; the synchronizer only reads it except when seeking for
// PlaySegment.
type Player interface {
	// CurrentTimeMS returns the cursor position in milliseconds.
	CurrentTimeMS() int64
	// SeekMS moves the cursor.
	SeekMS(ms int64)
	Play()
	Pause()
}

// Synchronizer recomputes the current segment on every time update and
// fires auto-stop boundaries armed by PlaySegment.
type Synchronizer struct {
	player   Player
	segments []api.Segment

	currentIndex int
	// stopAtMS is a single one-shot boundary slot. It survives manual
	// seeks and fires whenever the cursor reaches or passes it.
	stopAtMS int64
	stopSet  bool

	onChange func(listPos int)
}

// NewSynchronizer creates a synchronizer over the given segment sequence.
// onChange, if non-nil, receives the list position (not the segment
// index) whenever the current segment changes, so the consumer can bring
// it into view; it receives NoSegment when the cursor leaves all segments.
func NewSynchronizer(player Player, segments []api.Segment, onChange func(listPos int)) *Synchronizer {
	return &Synchronizer{
		player:       player,
		segments:     segments,
		currentIndex: NoSegment,
		onChange:     onChange,
	}
}

// CurrentIndex returns the list position of the segment containing the
// cursor, or NoSegment.
func (s *Synchronizer) CurrentIndex() int { return s.currentIndex }

// TimeUpdate processes one time-update notification. Updates are
// delivered one at a time and normally in non-decreasing time order, but
// the cursor can jump backward on seek; the scan below is a fresh linear
// scan each call, so arbitrary jumps are fine.
func (s *Synchronizer) TimeUpdate() {
	currentMS := s.player.CurrentTimeMS()

	if s.stopSet && currentMS >= s.stopAtMS {
		s.player.Pause()
		s.stopSet = false
		log.Debug().Int64("atMs", currentMS).Msg("Segment playback boundary reached")
	}

	found := NoSegment
	for i := range s.segments {
		if s.segments[i].Contains(currentMS) {
			found = i
			break
		}
	}

	if found != s.currentIndex {
		s.currentIndex = found
		if s.onChange != nil {
			s.onChange(found)
		}
	}
}

// PlaySegment seeks to the segment's start, arms the stop boundary at its
// end, and starts playback. The boundary stays armed across manual seeks
// until the cursor crosses it or another PlaySegment replaces it.
func (s *Synchronizer) PlaySegment(seg api.Segment) {
	s.player.SeekMS(seg.StartMS)
	s.stopAtMS = seg.EndMS
	s.stopSet = true
	s.player.Play()
}

// BoundaryArmed reports whether a stop boundary is pending.
func (s *Synchronizer) BoundaryArmed() bool { return s.stopSet }
