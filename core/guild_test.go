package core

import (
	"testing"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/event"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/invite"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/joined"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

func TestGuildSetupTeardown(t *testing.T) {
	var (
		invites = invite.MemService()
		joins   = joined.MemService()
		totals  = total.MemService()
		locks   = NewCommunityLocks()

		guildID uint64 = 55

		setup    = GuildSetup(invites, locks)
		teardown = GuildTeardown(invites, joins, totals, locks)
		ns       = Namespace(guildID)
	)

	err := setup(guildID, []event.InviteUse{
		{Code: "abc", InviterID: 1, Uses: 3},
		{Code: "def", InviterID: 2, Uses: 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	is, err := invites.Query(ns, invite.QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 2; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := is[0].Uses, 3; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if err := totals.CreditGenuine(ns, 1); err != nil {
		t.Fatal(err)
	}

	if err := teardown(guildID); err != nil {
		t.Fatal(err)
	}

	is, err = invites.Query(ns, invite.QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	ts, err := totals.Query(ns, total.QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(ts), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
