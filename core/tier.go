package core

import (
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/chat"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// Tier thresholds over the net standing of an inviter.
const (
	TierNone Tier = iota
	TierSupporter
	TierHelper
	TierLegend
)

// Tier is the reward level an inviter currently holds.
type Tier uint8

func (t Tier) String() string {
	switch t {
	case TierSupporter:
		return "supporter"
	case TierHelper:
		return "helper"
	case TierLegend:
		return "legend"
	}

	return "none"
}

// TierFor derives the tier from a net standing. Thresholds partition the
// range, a standing always maps to exactly one tier.
func TierFor(net int) Tier {
	switch {
	case net >= 10:
		return TierLegend
	case net >= 5:
		return TierHelper
	case net >= 1:
		return TierSupporter
	}

	return TierNone
}

// Ranks maps tiers to the platform roles rewarding them.
type Ranks struct {
	Supporter uint64
	Helper    uint64
	Legend    uint64
}

// RoleFor returns the role id rewarding the given tier, zero for TierNone.
func (r Ranks) RoleFor(t Tier) uint64 {
	switch t {
	case TierSupporter:
		return r.Supporter
	case TierHelper:
		return r.Helper
	case TierLegend:
		return r.Legend
	}

	return 0
}

// Roles returns all managed role ids.
func (r Ranks) Roles() []uint64 {
	return []uint64{
		r.Supporter,
		r.Helper,
		r.Legend,
	}
}

// TierSyncFunc reconciles the tier roles of a member with the current
// standing.
type TierSyncFunc func(guildID, memberID uint64) error

// TierSync reads the net standing of the member and converges the held roles
// towards it: the role of the current tier is granted if missing, the other
// managed roles are revoked if held. Roles outside the configured ranks are
// never touched. A member the platform no longer knows is skipped.
func TierSync(
	totals total.Service,
	platform chat.Service,
	ranks Ranks,
) TierSyncFunc {
	return func(guildID, memberID uint64) error {
		ns := Namespace(guildID)

		net, err := totals.Net(ns, memberID)
		if err != nil {
			return err
		}

		member, err := platform.Member(guildID, memberID)
		if err != nil {
			if chat.IsMemberNotFound(err) {
				return nil
			}

			return err
		}

		want := ranks.RoleFor(TierFor(net))

		if want != 0 && !member.HoldsRole(want) {
			err := platform.GrantRole(guildID, memberID, want)
			if err != nil {
				return err
			}
		}

		for _, roleID := range ranks.Roles() {
			if roleID == 0 || roleID == want {
				continue
			}

			if !member.HoldsRole(roleID) {
				continue
			}

			err := platform.RevokeRole(guildID, memberID, roleID)
			if err != nil {
				return err
			}
		}

		return nil
	}
}
