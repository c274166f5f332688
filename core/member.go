package core

import (
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/joined"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// MemberLeaveFunc reverses the attribution of a leaving member. Returns the
// inviter whose standing changed, zero when the member was never attributed.
type MemberLeaveFunc func(guildID, memberID uint64) (uint64, error)

// MemberLeave looks up the join provenance of the leaving member and debits
// the recorded inviter. A member without provenance leaves without any credit
// movement, as does a second leave of the same member.
func MemberLeave(
	joins joined.Service,
	totals total.Service,
) MemberLeaveFunc {
	return func(guildID, memberID uint64) (uint64, error) {
		ns := Namespace(guildID)

		js, err := joins.Query(ns, joined.QueryOptions{
			JoinerIDs: []uint64{
				memberID,
			},
		})
		if err != nil {
			return 0, err
		}

		if len(js) == 0 {
			return 0, nil
		}

		inviterID := js[0].InviterID

		if err := joins.Delete(ns, memberID); err != nil {
			return 0, err
		}

		if err := totals.CreditLeft(ns, inviterID); err != nil {
			return 0, err
		}

		return inviterID, nil
	}
}
