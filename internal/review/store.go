// Package review maintains the in-memory segment review state: the merged
// timeline of AI decisions and human overrides, its mutation operations,
// derived agreement statistics, and the agreement report.
package review

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/clipworks/reelcut/internal/api"
)

// Saver submits the full segment sequence in one request. Satisfied by
// *api.Client via SaveEvaluation.
type Saver interface {
	SaveEvaluation(ctx context.Context, projectID string, segments []api.Segment) (*api.EvaluationResponse, error)
}

// Store is the single owner of segment state for a review session. All
// writes go through SetAction, SetReason, and SetNote; other components
// only read. Stores are built once per session via Merge and discarded
// when the session ends.
type Store struct {
	projectID string
	segments  []api.Segment
	dirty     bool
	saver     Saver
}

// Merge constructs a Store from the AI-authored segment list and an
// optional previously saved evaluation. The AI list is authoritative for
// index, interval, text, and AI decision; the saved evaluation contributes
// human decisions matched by index. AI segment order is preserved.
func Merge(projectID string, aiSegments []api.Segment, saved *api.EvaluationResponse, saver Saver) *Store {
	humanByIndex := make(map[int]*api.HumanDecision)
	if saved != nil {
		for _, es := range saved.Segments {
			if es.Human != nil {
				humanByIndex[es.Index] = es.Human
			}
		}
	}

	merged := make([]api.Segment, len(aiSegments))
	for i, seg := range aiSegments {
		merged[i] = api.Segment{
			Index:   seg.Index,
			StartMS: seg.StartMS,
			EndMS:   seg.EndMS,
			Text:    seg.Text,
			AI:      seg.AI,
			Human:   humanByIndex[seg.Index],
		}
	}

	return &Store{projectID: projectID, segments: merged, saver: saver}
}

// Segments returns the current sequence, ordered by index ascending.
// Callers must not mutate the returned slice.
func (s *Store) Segments() []api.Segment { return s.segments }

// Len returns the segment count.
func (s *Store) Len() int { return len(s.segments) }

// Dirty reports whether there are unsaved edits.
func (s *Store) Dirty() bool { return s.dirty }

// SetAction sets or toggles the human decision for the segment with the
// given index. Selecting the action already chosen clears the decision
// back to nil: re-review starts from scratch. Switching between actions
// preserves any previously entered reason and note.
func (s *Store) SetAction(index int, action api.Action) {
	for i := range s.segments {
		seg := &s.segments[i]
		if seg.Index != index {
			continue
		}
		if seg.Human != nil && seg.Human.Action == action {
			seg.Human = nil
		} else {
			var reason, note string
			if seg.Human != nil {
				reason = seg.Human.Reason
				note = seg.Human.Note
			}
			seg.Human = &api.HumanDecision{Action: action, Reason: reason, Note: note}
		}
		s.dirty = true
		return
	}
}

// SetReason updates the reason of an existing human decision. A segment
// with no human decision yet is left untouched; a toggle and a field edit
// can arrive out of order from the UI.
func (s *Store) SetReason(index int, reason string) {
	for i := range s.segments {
		seg := &s.segments[i]
		if seg.Index != index || seg.Human == nil {
			continue
		}
		seg.Human.Reason = reason
		s.dirty = true
		return
	}
}

// SetNote updates the note of an existing human decision. No-op without a
// prior decision, like SetReason.
func (s *Store) SetNote(index int, note string) {
	for i := range s.segments {
		seg := &s.segments[i]
		if seg.Index != index || seg.Human == nil {
			continue
		}
		seg.Human.Note = note
		s.dirty = true
		return
	}
}

// Save submits the full current sequence, including untouched AI-only
// segments, in one request. Success clears the dirty flag; failure leaves
// the sequence and the dirty flag unchanged so the user can retry.
func (s *Store) Save(ctx context.Context) error {
	_, err := s.saver.SaveEvaluation(ctx, s.projectID, s.segments)
	if err != nil {
		log.Warn().Err(err).Str("projectId", s.projectID).Msg("Evaluation save failed; keeping local edits")
		return err
	}
	s.dirty = false
	log.Info().Str("projectId", s.projectID).Int("segments", len(s.segments)).Msg("Evaluation saved")
	return nil
}

// Stats are derived agreement statistics, recomputed from the current
// sequence on every call.
type Stats struct {
	Total         int
	Reviewed      int
	AICut         int
	Agreements    int
	AgreementRate float64
}

// Stats scans the sequence and returns current statistics. AgreementRate
// is defined as 0 when nothing has been reviewed yet; report generation
// depends on that, so it is not left to UI fallbacks.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.segments)}
	for _, seg := range s.segments {
		if seg.Human != nil {
			st.Reviewed++
		}
		if seg.AI != nil && seg.AI.Action == api.ActionCut {
			st.AICut++
		}
		if seg.Human != nil && seg.AI != nil && seg.Human.Action == seg.AI.Action {
			st.Agreements++
		}
	}
	if st.Reviewed > 0 {
		st.AgreementRate = float64(st.Agreements) / float64(st.Reviewed)
	}
	return st
}
