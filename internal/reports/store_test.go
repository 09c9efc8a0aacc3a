package reports

import (
	"path/filepath"
	"testing"

	"github.com/clipworks/reelcut/internal/review"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive", "reports.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndGet(t *testing.T) {
	store := openTestStore(t)

	r := review.Report{
		ProjectID:     "p1",
		TotalSegments: 10,
		HumanReviewed: 4,
		AgreementRate: 0.8,
		Confusion:     review.ConfusionMatrix{TP: 3, TN: 5, FP: 1, FN: 1},
	}

	id, err := store.Append(r)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero row id")
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ProjectID != "p1" || got.TotalSegments != 10 || got.AgreementRate != 0.8 {
		t.Errorf("unexpected report: %+v", got)
	}
	if got.Confusion != r.Confusion {
		t.Errorf("confusion matrix not round-tripped: %+v", got.Confusion)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get(999); err == nil {
		t.Fatal("expected error for unknown report id")
	}
}

func TestHistoryFiltersByProjectNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i, rate := range []float64{0.5, 0.7, 0.9} {
		r := review.Report{ProjectID: "p1", TotalSegments: i + 1, AgreementRate: rate}
		if _, err := store.Append(r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if _, err := store.Append(review.Report{ProjectID: "other"}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.History("p1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries for p1, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ProjectID != "p1" {
			t.Errorf("entry from wrong project: %+v", e)
		}
	}
	// Inserts can land in the same second; row id breaks the tie, so the
	// latest insert comes first.
	if entries[0].TotalSegments != 3 {
		t.Errorf("newest entry first, got %+v", entries[0])
	}

	limited, err := store.History("p1", 2)
	if err != nil {
		t.Fatalf("history with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit 2, got %d", len(limited))
	}
}
