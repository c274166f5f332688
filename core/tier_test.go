package core

import (
	"testing"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/chat"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

func testRanks() Ranks {
	return Ranks{
		Supporter: 1001,
		Helper:    1002,
		Legend:    1003,
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		net  int
		want Tier
	}{
		{-3, TierNone},
		{0, TierNone},
		{1, TierSupporter},
		{4, TierSupporter},
		{5, TierHelper},
		{9, TierHelper},
		{10, TierLegend},
		{100, TierLegend},
	}

	for _, c := range cases {
		if have := TierFor(c.net); have != c.want {
			t.Errorf("net %v: have %v, want %v", c.net, have, c.want)
		}
	}
}

func TestTierSyncGrant(t *testing.T) {
	var (
		totals   = total.MemService()
		platform = chat.NewMemService()
		ranks    = testRanks()

		guildID uint64 = 55
		inviter uint64 = 1

		fn = TierSync(totals, platform, ranks)
		ns = Namespace(guildID)
	)

	platform.SetMember(guildID, &chat.Member{ID: inviter})

	for i := 0; i < 5; i++ {
		if err := totals.CreditGenuine(ns, inviter); err != nil {
			t.Fatal(err)
		}
	}

	if err := fn(guildID, inviter); err != nil {
		t.Fatal(err)
	}

	m, err := platform.Member(guildID, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := m.HoldsRole(ranks.Helper), true; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := m.HoldsRole(ranks.Supporter), false; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// Converged state, a second sync changes nothing.
	if err := fn(guildID, inviter); err != nil {
		t.Fatal(err)
	}

	m, err = platform.Member(guildID, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(m.Roles), 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestTierSyncRevoke(t *testing.T) {
	var (
		totals   = total.MemService()
		platform = chat.NewMemService()
		ranks    = testRanks()

		guildID uint64 = 55
		inviter uint64 = 1

		fn = TierSync(totals, platform, ranks)
		ns = Namespace(guildID)
	)

	// The member holds a tier role and an unrelated role while the
	// standing no longer supports any tier.
	platform.SetMember(guildID, &chat.Member{
		ID: inviter,
		Roles: []uint64{
			ranks.Supporter,
			4242,
		},
	})

	if err := totals.CreditGenuine(ns, inviter); err != nil {
		t.Fatal(err)
	}
	if err := totals.CreditLeft(ns, inviter); err != nil {
		t.Fatal(err)
	}

	if err := fn(guildID, inviter); err != nil {
		t.Fatal(err)
	}

	m, err := platform.Member(guildID, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := m.HoldsRole(ranks.Supporter), false; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// Unrelated roles are never touched.
	if have, want := m.HoldsRole(4242), true; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestTierSyncMemberGone(t *testing.T) {
	var (
		totals   = total.MemService()
		platform = chat.NewMemService()

		guildID uint64 = 55
		inviter uint64 = 1

		fn = TierSync(totals, platform, testRanks())
		ns = Namespace(guildID)
	)

	if err := totals.CreditGenuine(ns, inviter); err != nil {
		t.Fatal(err)
	}

	// A member the platform no longer knows is skipped, not an error.
	if err := fn(guildID, inviter); err != nil {
		t.Fatal(err)
	}
}
