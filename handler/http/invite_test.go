package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/core"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/chat"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

func TestInviteCounts(t *testing.T) {
	var (
		totals   = total.MemService()
		platform = chat.NewMemService()

		guildID uint64 = 55
		inviter uint64 = 1
	)

	platform.SetMember(guildID, &chat.Member{ID: inviter})

	ns := core.Namespace(guildID)

	for i := 0; i < 3; i++ {
		if err := totals.CreditGenuine(ns, inviter); err != nil {
			t.Fatal(err)
		}
	}

	var (
		counts = core.InviteCounts(totals)
		sync   = core.TierSync(totals, platform, core.Ranks{
			Supporter: 1001,
			Helper:    1002,
			Legend:    1003,
		})

		router = mux.NewRouter()
	)

	router.Methods("GET").Path(`/guilds/{guildID:[0-9]+}/members/{memberID:[0-9]+}/invites`).Name("inviteCounts").HandlerFunc(
		Wrap(CtxPrepare("test"), InviteCounts(counts, sync)),
	)

	var (
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(
			"GET",
			"/guilds/55/members/1/invites",
			nil,
		)
	)

	router.ServeHTTP(rec, req)

	if have, want := rec.Code, http.StatusOK; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	payload := payloadInviteCounts{}

	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}

	if have, want := payload.Genuine, 3; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := payload.Net, 3; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// The read converged the roles.
	m, err := platform.Member(guildID, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := m.HoldsRole(1001), true; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/guilds/55/members/nan/invites", nil)

	router.ServeHTTP(rec, req)

	if have, want := rec.Code, http.StatusNotFound; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestLeaderboard(t *testing.T) {
	var (
		totals   = total.MemService()
		platform = chat.NewMemService()

		guildID uint64 = 55
	)

	ns := core.Namespace(guildID)

	for id, genuine := range map[uint64]int{1: 2, 2: 6} {
		for i := 0; i < genuine; i++ {
			if err := totals.CreditGenuine(ns, id); err != nil {
				t.Fatal(err)
			}
		}
	}

	platform.SetMember(guildID, &chat.Member{ID: 1, DisplayName: "ada"})
	platform.SetMember(guildID, &chat.Member{ID: 2, DisplayName: "grace"})

	router := mux.NewRouter()

	router.Methods("GET").Path(`/guilds/{guildID:[0-9]+}/leaderboard`).Name("leaderboard").HandlerFunc(
		Wrap(CtxPrepare("test"), Leaderboard(core.TopInviters(totals, platform))),
	)

	var (
		rec = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/guilds/55/leaderboard?limit=1", nil)
	)

	router.ServeHTTP(rec, req)

	if have, want := rec.Code, http.StatusOK; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	payload := payloadLeaderboard{}

	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}

	if have, want := len(payload.Inviters), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := payload.Inviters[0].DisplayName, "grace"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
