package assessment

// CandidateEntry is one row in the review screen's working set. Durability of
// the selected flag happens only through the server's selection endpoint; the
// reducers here describe the in-memory contract.
type CandidateEntry struct {
	ID       uint
	Name     string
	Selected bool
}

// minSelectedForAdvance is the business floor for a stage transition: a next
// round with a single candidate is not a round.
const minSelectedForAdvance = 2

// MarkSelected returns a new list with the given ids flipped to selected,
// all other entries untouched.
func MarkSelected(entries []CandidateEntry, ids []uint) []CandidateEntry {
	return setSelected(entries, ids, true)
}

// MarkDeselected is the symmetric reducer, flipping the given ids off.
func MarkDeselected(entries []CandidateEntry, ids []uint) []CandidateEntry {
	return setSelected(entries, ids, false)
}

func setSelected(entries []CandidateEntry, ids []uint, selected bool) []CandidateEntry {
	flip := make(map[uint]bool, len(ids))
	for _, id := range ids {
		flip[id] = true
	}
	out := make([]CandidateEntry, len(entries))
	for i, e := range entries {
		if flip[e.ID] {
			e.Selected = selected
		}
		out[i] = e
	}
	return out
}

// CountSelected reports how many entries are currently selected.
func CountSelected(entries []CandidateEntry) int {
	n := 0
	for _, e := range entries {
		if e.Selected {
			n++
		}
	}
	return n
}

// SelectedIDs returns the ids of the selected entries, in list order. This is
// the carry-forward list handed to the stage transition endpoint.
func SelectedIDs(entries []CandidateEntry) []uint {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		if e.Selected {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// CanAdvanceStage is the precondition callers check before invoking a stage
// transition. The server enforces the same floor.
func CanAdvanceStage(entries []CandidateEntry) bool {
	return CountSelected(entries) >= minSelectedForAdvance
}
