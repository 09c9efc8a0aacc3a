package playback

import (
	"testing"
	"time"

	"github.com/clipworks/reelcut/internal/api"
)

// scriptedPlayer is a Player whose cursor the test moves directly.
type scriptedPlayer struct {
	timeMS  int64
	playing bool
}

func (p *scriptedPlayer) CurrentTimeMS() int64 { return p.timeMS }
func (p *scriptedPlayer) SeekMS(ms int64)      { p.timeMS = ms }
func (p *scriptedPlayer) Play()                { p.playing = true }
func (p *scriptedPlayer) Pause()               { p.playing = false }

func timeline() []api.Segment {
	return []api.Segment{
		{Index: 0, StartMS: 0, EndMS: 1000},
		{Index: 1, StartMS: 1000, EndMS: 2500},
		// gap from 2500 to 3000
		{Index: 2, StartMS: 3000, EndMS: 4000},
	}
}

func TestTimeUpdateSegmentLookup(t *testing.T) {
	cases := []struct {
		name   string
		timeMS int64
		want   int
	}{
		{"inside first", 500, 0},
		{"boundary belongs to the next segment", 1000, 1},
		{"just before boundary", 999, 0},
		{"inside second", 1500, 1},
		{"gap", 2700, NoSegment},
		{"start of third after gap", 3000, 2},
		{"past the end", 4000, NoSegment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			player := &scriptedPlayer{timeMS: tc.timeMS}
			sync := NewSynchronizer(player, timeline(), nil)
			sync.TimeUpdate()
			if got := sync.CurrentIndex(); got != tc.want {
				t.Errorf("at %dms: current = %d, want %d", tc.timeMS, got, tc.want)
			}
		})
	}
}

func TestOnChangeFiresOnlyOnTransitions(t *testing.T) {
	player := &scriptedPlayer{}
	var changes []int
	sync := NewSynchronizer(player, timeline(), func(pos int) { changes = append(changes, pos) })

	for _, ms := range []int64{100, 200, 1200, 1300, 2700, 3500} {
		player.timeMS = ms
		sync.TimeUpdate()
	}

	want := []int{0, 1, NoSegment, 2}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
}

func TestPlaySegmentArmsStopBoundary(t *testing.T) {
	player := &scriptedPlayer{}
	sync := NewSynchronizer(player, timeline(), nil)

	sync.PlaySegment(timeline()[1])
	if player.timeMS != 1000 || !player.playing {
		t.Fatalf("PlaySegment must seek to start and play, at %dms playing=%v", player.timeMS, player.playing)
	}
	if !sync.BoundaryArmed() {
		t.Fatal("boundary should be armed")
	}

	player.timeMS = 2000
	sync.TimeUpdate()
	if !player.playing {
		t.Fatal("playback must continue before the boundary")
	}

	player.timeMS = 2500
	sync.TimeUpdate()
	if player.playing {
		t.Error("cursor reaching the boundary must pause playback")
	}
	if sync.BoundaryArmed() {
		t.Error("boundary is one-shot and must disarm after firing")
	}

	// A later pass over the same time must not pause again.
	player.playing = true
	player.timeMS = 2600
	sync.TimeUpdate()
	if !player.playing {
		t.Error("a fired boundary must not pause subsequent playback")
	}
}

func TestStopBoundarySurvivesManualSeek(t *testing.T) {
	player := &scriptedPlayer{}
	sync := NewSynchronizer(player, timeline(), nil)

	sync.PlaySegment(timeline()[0]) // boundary at 1000
	player.timeMS = 300
	sync.TimeUpdate()

	// Manual seek backward; the boundary stays armed.
	player.SeekMS(100)
	sync.TimeUpdate()
	if !sync.BoundaryArmed() {
		t.Fatal("manual seek must not disarm the boundary")
	}

	// Manual seek past the boundary fires it.
	player.SeekMS(1800)
	sync.TimeUpdate()
	if player.playing {
		t.Error("seeking past the boundary must pause playback")
	}
	if sync.BoundaryArmed() {
		t.Error("boundary must disarm after firing")
	}
}

func TestPlaySegmentReplacesBoundary(t *testing.T) {
	player := &scriptedPlayer{}
	sync := NewSynchronizer(player, timeline(), nil)

	sync.PlaySegment(timeline()[0])
	sync.PlaySegment(timeline()[2]) // boundary now at 4000

	player.timeMS = 1000 // old boundary position
	sync.TimeUpdate()
	if !player.playing {
		t.Error("replaced boundary must not fire")
	}

	player.timeMS = 4000
	sync.TimeUpdate()
	if player.playing {
		t.Error("new boundary must fire at its own end")
	}
}

func TestClockAdvance(t *testing.T) {
	clock := NewClock(5000)

	if clock.Playing() {
		t.Fatal("clock starts paused")
	}
	base := time.Now()
	clock.Play()
	clock.lastTick = base

	clock.Advance(base.Add(800 * time.Millisecond))
	if got := clock.CurrentTimeMS(); got != 800 {
		t.Errorf("position = %d, want 800", got)
	}

	clock.Pause()
	clock.Advance(base.Add(2 * time.Second))
	if got := clock.CurrentTimeMS(); got != 800 {
		t.Errorf("paused clock must not advance, position = %d", got)
	}
}

func TestClockSeekClampsAndEndPauses(t *testing.T) {
	clock := NewClock(5000)

	clock.SeekMS(-100)
	if clock.CurrentTimeMS() != 0 {
		t.Errorf("negative seek must clamp to 0, got %d", clock.CurrentTimeMS())
	}
	clock.SeekMS(9000)
	if clock.CurrentTimeMS() != 5000 {
		t.Errorf("seek past end must clamp to duration, got %d", clock.CurrentTimeMS())
	}

	clock.SeekMS(4900)
	base := time.Now()
	clock.Play()
	clock.lastTick = base
	clock.Advance(base.Add(500 * time.Millisecond))
	if clock.CurrentTimeMS() != 5000 {
		t.Errorf("clock must clamp at the end, got %d", clock.CurrentTimeMS())
	}
	if clock.Playing() {
		t.Error("clock must pause at the end of the source")
	}
}
