package review

import (
	"strings"
	"testing"

	"github.com/clipworks/reelcut/internal/api"
)

func seg(index int, startMS, endMS int64, ai, human api.Action, aiReason, humanReason string) api.Segment {
	s := api.Segment{Index: index, StartMS: startMS, EndMS: endMS, Text: "t"}
	if ai != "" {
		s.AI = &api.AIDecision{Action: ai, Reason: aiReason}
	}
	if human != "" {
		s.Human = &api.HumanDecision{Action: human, Reason: humanReason}
	}
	return s
}

func TestBuildReportConfusionAndMetrics(t *testing.T) {
	segments := []api.Segment{
		seg(0, 0, 1000, api.ActionCut, api.ActionCut, "filler", ""),      // TP
		seg(1, 1000, 2000, api.ActionKeep, api.ActionKeep, "", ""),       // TN
		seg(2, 2000, 4000, api.ActionCut, api.ActionKeep, "tangent", ""), // FP
		seg(3, 4000, 5000, api.ActionKeep, api.ActionCut, "", "fumble"),  // FN
		seg(4, 5000, 6000, api.ActionCut, "", "duplicate", ""),           // unreviewed: implicit TP
	}

	r := BuildReport("p1", segments)

	if r.Confusion != (ConfusionMatrix{TP: 2, TN: 1, FP: 1, FN: 1}) {
		t.Fatalf("unexpected confusion matrix: %+v", r.Confusion)
	}
	if r.TotalSegments != 5 || r.HumanReviewed != 4 || r.ImplicitAgree != 1 {
		t.Errorf("unexpected counts: %+v", r)
	}
	if r.AgreementRate != 0.6 {
		t.Errorf("agreement rate = %v, want 0.6", r.AgreementRate)
	}
	if r.Metrics.Accuracy != 0.6 {
		t.Errorf("accuracy = %v, want 0.6", r.Metrics.Accuracy)
	}
	// precision = 2/3, recall = 2/3, f1 = 2/3
	want := 2.0 / 3.0
	if r.Metrics.Precision != want || r.Metrics.Recall != want {
		t.Errorf("precision/recall = %v/%v, want %v", r.Metrics.Precision, r.Metrics.Recall, want)
	}
	if diff := r.Metrics.F1 - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("f1 = %v, want %v", r.Metrics.F1, want)
	}
	if r.AICutCount != 3 || r.AICutMS != 4000 {
		t.Errorf("AI cut totals: count=%d ms=%d", r.AICutCount, r.AICutMS)
	}
	if r.TruthCutCount != 3 || r.TruthCutMS != 3000 {
		t.Errorf("truth cut totals: count=%d ms=%d", r.TruthCutCount, r.TruthCutMS)
	}
}

func TestBuildReportEmptyDenominators(t *testing.T) {
	// All keeps: no positives anywhere.
	segments := []api.Segment{
		seg(0, 0, 1000, api.ActionKeep, "", "", ""),
		seg(1, 1000, 2000, api.ActionKeep, api.ActionKeep, "", ""),
	}

	r := BuildReport("p1", segments)
	if r.Metrics.Precision != 1 || r.Metrics.Recall != 1 {
		t.Errorf("precision/recall must default to 1 with no positives, got %v/%v", r.Metrics.Precision, r.Metrics.Recall)
	}
	if r.Metrics.F1 != 1 {
		t.Errorf("f1 = %v, want 1", r.Metrics.F1)
	}
	if r.AgreementRate != 1 || r.Metrics.Accuracy != 1 {
		t.Errorf("all-agree report should score 1, got rate=%v accuracy=%v", r.AgreementRate, r.Metrics.Accuracy)
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	r := BuildReport("p1", nil)
	if r.TotalSegments != 0 || r.AgreementRate != 0 || r.Metrics.Accuracy != 0 {
		t.Errorf("empty report should carry zero totals, got %+v", r)
	}
	if r.Metrics.Precision != 1 || r.Metrics.Recall != 1 {
		t.Errorf("precision/recall default to 1 on empty input, got %+v", r.Metrics)
	}
}

func TestBuildReportReasonBreakdowns(t *testing.T) {
	segments := []api.Segment{
		// Two FPs with reason "filler", one with no reason.
		seg(0, 0, 1000, api.ActionCut, api.ActionKeep, "filler", ""),
		seg(1, 1000, 3000, api.ActionCut, api.ActionKeep, "filler", ""),
		seg(2, 3000, 4000, api.ActionCut, api.ActionKeep, "", ""),
		// One FN keyed by the human's reason.
		seg(3, 4000, 5000, api.ActionKeep, api.ActionCut, "", "retake_signal"),
	}

	r := BuildReport("p1", segments)

	if len(r.FPReasons) != 2 {
		t.Fatalf("expected 2 FP reason groups, got %d", len(r.FPReasons))
	}
	if r.FPReasons[0].Reason != "filler" || r.FPReasons[0].Count != 2 || r.FPReasons[0].TotalMS != 3000 {
		t.Errorf("unexpected top FP group: %+v", r.FPReasons[0])
	}
	if r.FPReasons[1].Reason != "(none)" || r.FPReasons[1].Count != 1 {
		t.Errorf("missing reason should group under (none), got %+v", r.FPReasons[1])
	}
	if len(r.FNReasons) != 1 || r.FNReasons[0].Reason != "retake_signal" {
		t.Errorf("unexpected FN groups: %+v", r.FNReasons)
	}

	if len(r.Disagreements) != 4 {
		t.Fatalf("expected 4 disagreements, got %d", len(r.Disagreements))
	}
	for i := 1; i < len(r.Disagreements); i++ {
		if r.Disagreements[i].Index < r.Disagreements[i-1].Index {
			t.Fatal("disagreements must be sorted by index ascending")
		}
	}
}

func TestReportMarkdown(t *testing.T) {
	segments := []api.Segment{
		seg(0, 0, 1000, api.ActionCut, api.ActionKeep, "filler", ""),
		seg(1, 1000, 2000, api.ActionKeep, api.ActionKeep, "", ""),
	}

	md := BuildReport("p1", segments).Markdown()

	for _, want := range []string{
		"# Agreement report: project p1",
		"Agreement rate: 50.0%",
		"Confusion: TP=0 TN=1 FP=1 FN=0",
		"False positives by AI reason",
		"#0 [0ms-1000ms]",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "False negatives") {
		t.Error("empty FN section should be omitted")
	}
}
