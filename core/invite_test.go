package core

import (
	"testing"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/invite"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

func TestInviteCreateDelete(t *testing.T) {
	var (
		invites = invite.MemService()
		locks   = NewCommunityLocks()

		guildID uint64 = 55

		create = InviteCreate(invites, locks)
		remove = InviteDelete(invites, locks)
		ns     = Namespace(guildID)
	)

	if err := create(guildID, "abc", 0); err != nil {
		t.Fatal(err)
	}

	// Recreation with a higher count is an upsert.
	if err := create(guildID, "abc", 4); err != nil {
		t.Fatal(err)
	}

	is, err := invites.Query(ns, invite.QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := is[0].Uses, 4; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if err := remove(guildID, "abc"); err != nil {
		t.Fatal(err)
	}

	is, err = invites.Query(ns, invite.QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestInviteCounts(t *testing.T) {
	var (
		totals = total.MemService()

		guildID uint64 = 55
		inviter uint64 = 1

		fn = InviteCounts(totals)
		ns = Namespace(guildID)
	)

	// A member without any credit reads as all zeroes.
	c, err := fn(guildID, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := *c, (InviteCount{}); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	for i := 0; i < 3; i++ {
		if err := totals.CreditGenuine(ns, inviter); err != nil {
			t.Fatal(err)
		}
	}
	if err := totals.CreditLeft(ns, inviter); err != nil {
		t.Fatal(err)
	}

	c, err = fn(guildID, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := c.Genuine, 3; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := c.Left, 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := c.Net, 2; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
