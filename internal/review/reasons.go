package review

import "github.com/clipworks/reelcut/internal/api"

// Reason vocabularies are disjoint per action. A human decision carries a
// reason from its action's set, or the empty string when unset.

// CutReasons are the valid reasons for a Cut decision.
var CutReasons = []string{
	"duplicate",
	"incomplete",
	"filler",
	"fumble",
	"retake_signal",
	"meta_comment",
	"tangent",
}

// KeepReasons are the valid reasons for a Keep decision.
var KeepReasons = []string{
	"best_take",
	"unique",
	"essential",
}

// ReasonsFor returns the reason vocabulary for an action.
func ReasonsFor(action api.Action) []string {
	if action == api.ActionCut {
		return CutReasons
	}
	return KeepReasons
}

// ValidReason reports whether reason is empty or drawn from the action's
// vocabulary.
func ValidReason(action api.Action, reason string) bool {
	if reason == "" {
		return true
	}
	for _, r := range ReasonsFor(action) {
		if r == reason {
			return true
		}
	}
	return false
}
