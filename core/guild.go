package core

import (
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/event"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/invite"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/joined"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// GuildSetupFunc backfills the invite snapshots of a joined community.
type GuildSetupFunc func(guildID uint64, live []event.InviteUse) error

// GuildSetup prepares the namespace of a community and seeds the snapshots
// from the live invites delivered with the join, so attribution can diff
// against them right away.
func GuildSetup(
	invites invite.Service,
	locks *CommunityLocks,
) GuildSetupFunc {
	return func(guildID uint64, live []event.InviteUse) error {
		ns := Namespace(guildID)

		unlock := locks.Lock(ns)
		defer unlock()

		if err := invites.Setup(ns); err != nil {
			return err
		}

		for _, u := range live {
			_, err := invites.Put(ns, &invite.Invite{
				Code: u.Code,
				Uses: u.Uses,
			})
			if err != nil {
				return err
			}
		}

		return nil
	}
}

// GuildTeardownFunc removes all state of a left community.
type GuildTeardownFunc func(guildID uint64) error

// GuildTeardown drops snapshots, aggregates and provenance of the community,
// nothing is retained.
func GuildTeardown(
	invites invite.Service,
	joins joined.Service,
	totals total.Service,
	locks *CommunityLocks,
) GuildTeardownFunc {
	return func(guildID uint64) error {
		ns := Namespace(guildID)

		unlock := locks.Lock(ns)
		defer unlock()

		if err := invites.Teardown(ns); err != nil {
			return err
		}

		if err := joins.Teardown(ns); err != nil {
			return err
		}

		return totals.Teardown(ns)
	}
}
