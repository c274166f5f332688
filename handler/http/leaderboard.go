package http

import (
	"context"
	"net/http"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/core"
)

const defaultLimit = 10

// Leaderboard returns the ranked inviters of a community.
func Leaderboard(fn core.TopInvitersFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		guildID, err := extractGuildID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		limit, err := extractLimit(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		es, err := fn(guildID, limit)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusOK, &payloadLeaderboard{
			Inviters: es,
		})
	}
}

type payloadLeaderboard struct {
	Inviters []*core.LeaderboardEntry `json:"inviters"`
}
