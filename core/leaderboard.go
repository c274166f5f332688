package core

import (
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/chat"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// LeaderboardEntry is a single ranked inviter.
type LeaderboardEntry struct {
	DisplayName string `json:"display_name"`
	Fake        int    `json:"fake"`
	Genuine     int    `json:"genuine"`
	InviterID   uint64 `json:"inviter_id"`
	Left        int    `json:"left"`
	Net         int    `json:"net"`
}

// TopInvitersFunc projects the ranked inviters of a community.
type TopInvitersFunc func(guildID uint64, limit uint) ([]*LeaderboardEntry, error)

// TopInviters ranks inviters by net standing and resolves their display
// names through the chat collaborator. Inviters the platform no longer knows
// have left the community and are skipped, not zero-filled.
func TopInviters(
	totals total.Service,
	platform chat.Service,
) TopInvitersFunc {
	return func(guildID uint64, limit uint) ([]*LeaderboardEntry, error) {
		ns := Namespace(guildID)

		ts, err := totals.Top(ns, limit)
		if err != nil {
			return nil, err
		}

		es := []*LeaderboardEntry{}

		for _, t := range ts {
			member, err := platform.Member(guildID, t.InviterID)
			if err != nil {
				if chat.IsMemberNotFound(err) {
					continue
				}

				return nil, err
			}

			es = append(es, &LeaderboardEntry{
				DisplayName: member.DisplayName,
				Fake:        t.Fake,
				Genuine:     t.Genuine,
				InviterID:   t.InviterID,
				Left:        t.Left,
				Net:         t.Net(),
			})
		}

		return es, nil
	}
}
