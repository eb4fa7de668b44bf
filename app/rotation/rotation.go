// Package rotation decides which member a chore falls to on a given date.
//
// Assignment is pure modular arithmetic over the period index: the assignee
// rotates by one position every period, and a per-chore offset staggers
// same-frequency chores so they don't all land on the same member at once.
package rotation

import (
	"time"

	"chorewheel/app/models"
	"chorewheel/app/period"
)

// Unassigned is returned by Assign when no member is eligible. Callers must
// render a distinct unassigned state, never fall back to member 0.
const Unassigned = -1

// Assign returns the index of the assigned member within the eligible
// subset, or Unassigned when eligibleCount is zero. Deterministic: fixed
// inputs always produce the same output.
func Assign(freq models.Frequency, t time.Time, eligibleCount, offset int) int {
	if eligibleCount <= 0 {
		return Unassigned
	}
	// Go's % keeps the dividend's sign and daily indexes are negative
	// before the epoch, so normalize into [0, eligibleCount).
	idx := (period.Index(freq, t)%eligibleCount + offset%eligibleCount) % eligibleCount
	if idx < 0 {
		idx += eligibleCount
	}
	return idx
}

// Eligible filters members down to those not exempt from the chore,
// preserving list order.
func Eligible(chore models.Chore, members []models.Member) []models.Member {
	exempt := make(map[string]struct{}, len(chore.ExemptMemberIDs))
	for _, id := range chore.ExemptMemberIDs {
		exempt[id] = struct{}{}
	}
	eligible := make([]models.Member, 0, len(members))
	for _, m := range members {
		if _, ok := exempt[m.ID]; !ok {
			eligible = append(eligible, m)
		}
	}
	return eligible
}

// AssignedMember resolves the concrete member assigned to chore on date t,
// using ranks as the per-chore fairness offsets. Returns nil when nobody is
// eligible.
func AssignedMember(chore models.Chore, members []models.Member, ranks map[string]int, t time.Time) *models.Member {
	eligible := Eligible(chore, members)
	idx := Assign(chore.Frequency, t, len(eligible), ranks[chore.ID])
	if idx == Unassigned {
		return nil
	}
	return &eligible[idx]
}
