package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"chorewheel/app/ledger"
	"chorewheel/app/models"
	"chorewheel/app/period"
	"chorewheel/app/rotation"
)

// Reconciler keeps the durable ledger consistent with the fast-path state:
// exactly one entry per (periodKey, choreID) for every chore's current
// period, plus completion patches as chores are marked and unmarked.
//
// The ledger is best-effort. Store failures are logged and swallowed so a
// broken ledger can never block completion toggling; the fast-path state
// stays authoritative and the next pass converges.
type Reconciler struct {
	ledger ledger.Store
}

// NewReconciler creates a reconciler writing to the given ledger store.
func NewReconciler(store ledger.Store) *Reconciler {
	return &Reconciler{ledger: store}
}

// Reconcile seeds a ledger entry for the current period of every chore that
// doesn't have one yet. Idempotent and safely re-triggerable: the existence
// check runs against the store on every call, so concurrent or repeated
// passes still converge to one entry per (period, chore). If the fast-path
// view already shows a completion for the period, the new entry carries it
// over so a chore completed just before seeding is not recorded as open.
// Returns the number of entries created.
func (r *Reconciler) Reconcile(ctx context.Context, st *models.State, now time.Time) int {
	ranks := rotation.BuildAllRanks(st.Chores)

	seeded := 0
	for _, chore := range st.Chores {
		pk := period.KeyFor(chore.Frequency, now)
		id := models.LedgerID(pk, chore.ID)

		existing, err := r.ledger.Get(ctx, id)
		if err != nil {
			slog.Warn("ledger existence check failed", "id", id, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		eligible := rotation.Eligible(chore, st.Members)
		idx := rotation.Assign(chore.Frequency, now, len(eligible), ranks[chore.Frequency][chore.ID])
		var assignedID *string
		if idx != rotation.Unassigned {
			assignedID = &eligible[idx].ID
		}

		entry := &models.LedgerEntry{
			ID:                id,
			PeriodKey:         pk,
			ChoreID:           chore.ID,
			ChoreNameSnapshot: chore.Name,
			FrequencySnapshot: chore.Frequency,
			AssignedMemberID:  assignedID,
			CreatedAt:         now,
		}
		if completion := st.Completion(pk, chore.ID); completion != nil {
			at := time.UnixMilli(completion.At)
			doneBy := completion.DoneByMemberID
			entry.Completed = true
			entry.CompletedAt = &at
			entry.CompletedByMemberID = &doneBy
			if member := st.MemberByID(doneBy); member != nil {
				name := member.Name
				entry.CompletedByName = &name
			}
		}

		if err := r.ledger.Put(ctx, entry); err != nil {
			slog.Warn("ledger seed failed", "id", id, "error", err)
			continue
		}
		seeded++
	}
	return seeded
}

// ApplyCompletion marks the ledger entry for (periodKey, choreID) completed,
// creating it first if reconciliation hasn't seeded it yet.
func (r *Reconciler) ApplyCompletion(ctx context.Context, periodKey, choreID, memberID, nameSnapshot string, now time.Time) (*models.LedgerEntry, error) {
	id := models.LedgerID(periodKey, choreID)
	entry, err := r.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &models.LedgerEntry{
			ID:                id,
			PeriodKey:         periodKey,
			ChoreID:           choreID,
			FrequencySnapshot: frequencyOfKey(periodKey),
			CreatedAt:         now,
		}
	}

	entry.Completed = true
	entry.CompletedAt = &now
	entry.CompletedByMemberID = &memberID
	if nameSnapshot != "" {
		entry.CompletedByName = &nameSnapshot
	} else {
		entry.CompletedByName = nil
	}

	if err := r.ledger.Put(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RevertCompletion clears the completion fields of the ledger entry for
// (periodKey, choreID). A missing entry is nothing to revert: (nil, nil).
func (r *Reconciler) RevertCompletion(ctx context.Context, periodKey, choreID string) (*models.LedgerEntry, error) {
	id := models.LedgerID(periodKey, choreID)
	entry, err := r.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	entry.Completed = false
	entry.CompletedAt = nil
	entry.CompletedByMemberID = nil
	entry.CompletedByName = nil

	if err := r.ledger.Put(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// frequencyOfKey recovers the frequency from a period key's namespace
// prefix, for entries created by ApplyCompletion before seeding ran.
func frequencyOfKey(periodKey string) models.Frequency {
	switch {
	case strings.HasPrefix(periodKey, "D:"):
		return models.Daily
	case strings.HasPrefix(periodKey, "W:"):
		return models.Weekly
	case strings.HasPrefix(periodKey, "M:"):
		return models.Monthly
	}
	return ""
}
