package core

import (
	"time"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/event"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/invite"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/joined"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// AgePolicy decides if a joining account is young enough for the join to
// count as fake.
type AgePolicy struct {
	// Calendar keeps the legacy classification where only joins in the
	// creation month of the account are inspected and the day-of-month
	// delta is compared against the window.
	Calendar   bool
	Now        func() time.Time
	WindowDays int
}

// IsFake indicates if an account created at the given time is below the
// policy window.
func (p AgePolicy) IsFake(createdAt time.Time) bool {
	if createdAt.IsZero() {
		return false
	}

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	now = now.UTC()
	createdAt = createdAt.UTC()

	if p.Calendar {
		return now.Year() == createdAt.Year() &&
			now.Month() == createdAt.Month() &&
			now.Day()-createdAt.Day() < p.WindowDays
	}

	return now.Sub(createdAt) < time.Duration(p.WindowDays)*24*time.Hour
}

// MemberJoinFunc attributes a joining member to the invite consumed by the
// join and moves the inviter credits accordingly. Returns the credited
// inviter id, zero when the join stays unattributed.
type MemberJoinFunc func(
	guildID, memberID uint64,
	memberCreatedAt time.Time,
	live []event.InviteUse,
) (uint64, error)

// MemberJoin diffs the live invite uses delivered with a join event against
// the stored snapshots to find the consumed invite. Snapshots are walked in
// code order and the first increase wins, so attribution stays deterministic
// when more than one invite moved inside the check window.
func MemberJoin(
	invites invite.Service,
	joins joined.Service,
	totals total.Service,
	locks *CommunityLocks,
	policy AgePolicy,
) MemberJoinFunc {
	return func(
		guildID, memberID uint64,
		memberCreatedAt time.Time,
		live []event.InviteUse,
	) (uint64, error) {
		ns := Namespace(guildID)

		unlock := locks.Lock(ns)
		defer unlock()

		ss, err := invites.Query(ns, invite.QueryOptions{})
		if err != nil {
			return 0, err
		}

		liveByCode := map[string]event.InviteUse{}

		for _, u := range live {
			liveByCode[u.Code] = u
		}

		var (
			consumed event.InviteUse
			found    bool
		)

		for _, s := range ss {
			u, ok := liveByCode[s.Code]
			if !ok {
				continue
			}

			if u.Uses > s.Uses {
				consumed = u
				found = true
				break
			}
		}

		if !found || consumed.InviterID == 0 {
			return 0, nil
		}

		if policy.IsFake(memberCreatedAt) {
			// Genuine and fake move together so the standing of the
			// inviter is unaffected, while the raw counts surface the
			// suspicious join. The snapshot stays stale on purpose.
			if err := totals.CreditGenuine(ns, consumed.InviterID); err != nil {
				return 0, err
			}

			if err := totals.CreditFake(ns, consumed.InviterID); err != nil {
				return 0, err
			}

			return consumed.InviterID, nil
		}

		if err := invites.Increment(ns, consumed.Code); err != nil {
			return 0, err
		}

		_, err = joins.Put(ns, &joined.Join{
			InviterID: consumed.InviterID,
			JoinerID:  memberID,
		})
		if err != nil {
			return 0, err
		}

		if err := totals.CreditGenuine(ns, consumed.InviterID); err != nil {
			return 0, err
		}

		return consumed.InviterID, nil
	}
}
