package stock

import (
	"sort"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// GroupConsecutive collapses the seats of one row into maximal runs.  Seats
// are ordered by suffix first so lettered or odd/even sequences never merge
// across a suffix boundary; a new run starts whenever the suffix changes or
// the number is not exactly the previous number plus step.  Opaque seats
// never join a run.  The input slice is left untouched.
func GroupConsecutive(seats []model.SeatToken, step model.GroupStep) []model.SeatGroup {
	if len(seats) == 0 {
		return nil
	}
	if step < model.StepSequential {
		step = model.StepSequential
	}

	sorted := make([]model.SeatToken, len(seats))
	copy(sorted, seats)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SeatSuffix != sorted[j].SeatSuffix {
			return sorted[i].SeatSuffix < sorted[j].SeatSuffix
		}
		return sorted[i].SeatNumber < sorted[j].SeatNumber
	})

	var groups []model.SeatGroup
	current := []model.SeatToken{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if !prev.Opaque && !cur.Opaque &&
			cur.SeatSuffix == prev.SeatSuffix && cur.SeatNumber == prev.SeatNumber+int(step) {
			current = append(current, cur)
			continue
		}
		groups = append(groups, newGroup(current))
		current = []model.SeatToken{cur}
	}
	return append(groups, newGroup(current))
}

func newGroup(members []model.SeatToken) model.SeatGroup {
	return model.SeatGroup{
		RowLabel: members[0].Row,
		Quantity: len(members),
		FirstRaw: members[0].Raw,
		LastRaw:  members[len(members)-1].Raw,
		Seats:    members,
	}
}
