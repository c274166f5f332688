package core

import (
	"testing"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/chat"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

func TestTopInviters(t *testing.T) {
	var (
		totals   = total.MemService()
		platform = chat.NewMemService()

		guildID uint64 = 55

		fn = TopInviters(totals, platform)
		ns = Namespace(guildID)
	)

	credit := func(id uint64, genuine int) {
		for i := 0; i < genuine; i++ {
			if err := totals.CreditGenuine(ns, id); err != nil {
				t.Fatal(err)
			}
		}
	}

	credit(1, 3)
	credit(2, 7)
	credit(3, 5)

	platform.SetMember(guildID, &chat.Member{ID: 1, DisplayName: "ada"})
	platform.SetMember(guildID, &chat.Member{ID: 2, DisplayName: "grace"})
	// Inviter 3 left the community.

	es, err := fn(guildID, 10)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(es), 2; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := es[0].InviterID, uint64(2); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := es[0].DisplayName, "grace"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := es[0].Net, 7; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := es[1].InviterID, uint64(1); have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
