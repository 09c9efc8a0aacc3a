package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clipworks/reelcut/internal/api"
)

// ConfusionMatrix counts AI-vs-truth outcomes with Cut as the positive
// class.
type ConfusionMatrix struct {
	TP int `json:"tp"`
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// Metrics are the standard classification metrics over the confusion
// matrix.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// ReasonBreakdown aggregates disagreements by reason.
type ReasonBreakdown struct {
	Reason  string `json:"reason"`
	Count   int    `json:"count"`
	TotalMS int64  `json:"total_ms"`
}

// Disagreement is one segment where AI and ground truth differ.
type Disagreement struct {
	Index       int    `json:"index"`
	StartMS     int64  `json:"start_ms"`
	EndMS       int64  `json:"end_ms"`
	Text        string `json:"text"`
	AIAction    string `json:"ai_action"`
	AIReason    string `json:"ai_reason"`
	HumanAction string `json:"human_action"`
	HumanReason string `json:"human_reason"`
	HumanNote   string `json:"human_note"`
}

// Report compares AI decisions against the human ground truth. Segments
// without a human decision adopt the AI's action as truth (implicit
// agreement), matching the server-side report.
type Report struct {
	ProjectID     string            `json:"project_id"`
	TotalSegments int               `json:"total_segments"`
	HumanReviewed int               `json:"human_reviewed"`
	ImplicitAgree int               `json:"implicit_agree"`
	AgreementRate float64           `json:"agreement_rate"`
	Confusion     ConfusionMatrix   `json:"confusion"`
	Metrics       Metrics           `json:"metrics"`
	AICutCount    int               `json:"ai_cut_count"`
	AICutMS       int64             `json:"ai_cut_ms"`
	TruthCutCount int               `json:"truth_cut_count"`
	TruthCutMS    int64             `json:"truth_cut_ms"`
	FPReasons     []ReasonBreakdown `json:"fp_reasons"`
	FNReasons     []ReasonBreakdown `json:"fn_reasons"`
	Disagreements []Disagreement    `json:"disagreements"`
}

const noReason = "(none)"

// BuildReport computes the agreement report for a segment sequence.
func BuildReport(projectID string, segments []api.Segment) Report {
	r := Report{ProjectID: projectID}

	fpCounts := map[string]int{}
	fnCounts := map[string]int{}
	fpMS := map[string]int64{}
	fnMS := map[string]int64{}

	for _, seg := range segments {
		aiAction := api.ActionKeep
		aiReason := ""
		if seg.AI != nil {
			aiAction = seg.AI.Action
			aiReason = seg.AI.Reason
		}

		// Ground truth: human if reviewed, else the AI's own action.
		truthAction := aiAction
		humanReason, humanNote := "", ""
		if seg.Human != nil {
			r.HumanReviewed++
			truthAction = seg.Human.Action
			humanReason = seg.Human.Reason
			humanNote = seg.Human.Note
		}

		dur := seg.DurationMS()
		if aiAction == api.ActionCut {
			r.AICutCount++
			r.AICutMS += dur
		}
		if truthAction == api.ActionCut {
			r.TruthCutCount++
			r.TruthCutMS += dur
		}

		switch {
		case aiAction == api.ActionCut && truthAction == api.ActionCut:
			r.Confusion.TP++
		case aiAction == api.ActionKeep && truthAction == api.ActionKeep:
			r.Confusion.TN++
		case aiAction == api.ActionCut && truthAction == api.ActionKeep:
			r.Confusion.FP++
			key := aiReason
			if key == "" {
				key = noReason
			}
			fpCounts[key]++
			fpMS[key] += dur
			r.Disagreements = append(r.Disagreements, disagreement(seg, aiAction, aiReason, truthAction, humanReason, humanNote))
		default: // AI keep, truth cut
			r.Confusion.FN++
			key := humanReason
			if key == "" {
				key = noReason
			}
			fnCounts[key]++
			fnMS[key] += dur
			r.Disagreements = append(r.Disagreements, disagreement(seg, aiAction, aiReason, truthAction, humanReason, humanNote))
		}
	}

	c := r.Confusion
	total := c.TP + c.TN + c.FP + c.FN
	r.TotalSegments = total
	r.ImplicitAgree = total - r.HumanReviewed

	if total > 0 {
		r.AgreementRate = float64(total-c.FP-c.FN) / float64(total)
		r.Metrics.Accuracy = float64(c.TP+c.TN) / float64(total)
	}
	r.Metrics.Precision = 1
	if c.TP+c.FP > 0 {
		r.Metrics.Precision = float64(c.TP) / float64(c.TP+c.FP)
	}
	r.Metrics.Recall = 1
	if c.TP+c.FN > 0 {
		r.Metrics.Recall = float64(c.TP) / float64(c.TP+c.FN)
	}
	if pr := r.Metrics.Precision + r.Metrics.Recall; pr > 0 {
		r.Metrics.F1 = 2 * r.Metrics.Precision * r.Metrics.Recall / pr
	}

	r.FPReasons = breakdown(fpCounts, fpMS)
	r.FNReasons = breakdown(fnCounts, fnMS)
	sort.Slice(r.Disagreements, func(i, j int) bool { return r.Disagreements[i].Index < r.Disagreements[j].Index })

	return r
}

func disagreement(seg api.Segment, aiAction api.Action, aiReason string, truthAction api.Action, humanReason, humanNote string) Disagreement {
	return Disagreement{
		Index:       seg.Index,
		StartMS:     seg.StartMS,
		EndMS:       seg.EndMS,
		Text:        seg.Text,
		AIAction:    string(aiAction),
		AIReason:    aiReason,
		HumanAction: string(truthAction),
		HumanReason: humanReason,
		HumanNote:   humanNote,
	}
}

// breakdown converts the reason counters into a list sorted by count
// descending, with reason as the tie-breaker for stable output.
func breakdown(counts map[string]int, ms map[string]int64) []ReasonBreakdown {
	out := make([]ReasonBreakdown, 0, len(counts))
	for reason, count := range counts {
		out = append(out, ReasonBreakdown{Reason: reason, Count: count, TotalMS: ms[reason]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// Markdown renders the report for terminal display or archiving.
func (r Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Agreement report: project %s\n\n", r.ProjectID)
	fmt.Fprintf(&b, "- Segments: %d (%d reviewed, %d implicit agree)\n", r.TotalSegments, r.HumanReviewed, r.ImplicitAgree)
	fmt.Fprintf(&b, "- Agreement rate: %.1f%%\n", r.AgreementRate*100)
	fmt.Fprintf(&b, "- AI cuts: %d (%.1fs)  Truth cuts: %d (%.1fs)\n\n",
		r.AICutCount, float64(r.AICutMS)/1000, r.TruthCutCount, float64(r.TruthCutMS)/1000)

	fmt.Fprintf(&b, "## Metrics (cut = positive)\n\n")
	fmt.Fprintf(&b, "| accuracy | precision | recall | f1 |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %.4f | %.4f | %.4f | %.4f |\n\n",
		r.Metrics.Accuracy, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
	fmt.Fprintf(&b, "Confusion: TP=%d TN=%d FP=%d FN=%d\n\n",
		r.Confusion.TP, r.Confusion.TN, r.Confusion.FP, r.Confusion.FN)

	writeReasons := func(title string, reasons []ReasonBreakdown) {
		if len(reasons) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, rb := range reasons {
			fmt.Fprintf(&b, "- %s: %d segments, %.1fs\n", rb.Reason, rb.Count, float64(rb.TotalMS)/1000)
		}
		b.WriteString("\n")
	}
	writeReasons("False positives by AI reason (AI cut, human keep)", r.FPReasons)
	writeReasons("False negatives by human reason (AI keep, human cut)", r.FNReasons)

	if len(r.Disagreements) > 0 {
		fmt.Fprintf(&b, "## Disagreements\n\n")
		for _, d := range r.Disagreements {
			fmt.Fprintf(&b, "- #%d [%dms-%dms] AI %s(%s) vs human %s(%s)", d.Index, d.StartMS, d.EndMS,
				d.AIAction, d.AIReason, d.HumanAction, d.HumanReason)
			if d.HumanNote != "" {
				fmt.Fprintf(&b, " -- %s", d.HumanNote)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
