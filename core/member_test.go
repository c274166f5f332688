package core

import (
	"testing"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/joined"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

func TestMemberLeave(t *testing.T) {
	var (
		joins  = joined.MemService()
		totals = total.MemService()

		guildID uint64 = 55
		inviter uint64 = 1
		joiner  uint64 = 9

		fn = MemberLeave(joins, totals)
		ns = Namespace(guildID)
	)

	_, err := joins.Put(ns, &joined.Join{
		InviterID: inviter,
		JoinerID:  joiner,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := totals.CreditGenuine(ns, inviter); err != nil {
		t.Fatal(err)
	}

	debitedID, err := fn(guildID, joiner)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := debitedID, inviter; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	net, err := totals.Net(ns, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := net, 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// Provenance is cleared, so a second leave is a no-op.
	debitedID, err = fn(guildID, joiner)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := debitedID, uint64(0); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	net, err = totals.Net(ns, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := net, 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestMemberLeaveUnattributed(t *testing.T) {
	var (
		joins  = joined.MemService()
		totals = total.MemService()

		guildID uint64 = 55
		member  uint64 = 9

		fn = MemberLeave(joins, totals)
		ns = Namespace(guildID)
	)

	debitedID, err := fn(guildID, member)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := debitedID, uint64(0); have != want {
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
