package core

import (
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/invite"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// InviteCreateFunc stores the snapshot of a freshly created invite.
type InviteCreateFunc func(guildID uint64, code string, uses int) error

// InviteCreate upserts the snapshot of an invite under the community lock, so
// the write cannot interleave with a concurrent join reading the same rows.
func InviteCreate(
	invites invite.Service,
	locks *CommunityLocks,
) InviteCreateFunc {
	return func(guildID uint64, code string, uses int) error {
		ns := Namespace(guildID)

		unlock := locks.Lock(ns)
		defer unlock()

		_, err := invites.Put(ns, &invite.Invite{
			Code: code,
			Uses: uses,
		})

		return err
	}
}

// InviteDeleteFunc drops the snapshot of a revoked invite.
type InviteDeleteFunc func(guildID uint64, code string) error

// InviteDelete removes the snapshot of an invite under the community lock.
func InviteDelete(
	invites invite.Service,
	locks *CommunityLocks,
) InviteDeleteFunc {
	return func(guildID uint64, code string) error {
		ns := Namespace(guildID)

		unlock := locks.Lock(ns)
		defer unlock()

		return invites.Delete(ns, code)
	}
}

// InviteCount carries the credit counts of a single inviter.
type InviteCount struct {
	Fake    int
	Genuine int
	Left    int
	Net     int
}

// InviteCountFunc returns the credit counts of a member, all zero when the
// member never received credit.
type InviteCountFunc func(guildID, memberID uint64) (*InviteCount, error)

// InviteCounts reads the aggregate of a member.
func InviteCounts(totals total.Service) InviteCountFunc {
	return func(guildID, memberID uint64) (*InviteCount, error) {
		ns := Namespace(guildID)

		ts, err := totals.Query(ns, total.QueryOptions{
			InviterIDs: []uint64{
				memberID,
			},
		})
		if err != nil {
			return nil, err
		}

		if len(ts) == 0 {
			return &InviteCount{}, nil
		}

		return &InviteCount{
			Fake:    ts[0].Fake,
			Genuine: ts[0].Genuine,
			Left:    ts[0].Left,
			Net:     ts[0].Net(),
		}, nil
	}
}
