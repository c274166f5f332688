package http

import (
	"context"
	"net/http"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/core"
)

// InviteCounts returns the invite credit counts of a member and converges the
// tier roles as a side effect, so a stale role never outlives a query.
func InviteCounts(
	fn core.InviteCountFunc,
	sync core.TierSyncFunc,
) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		guildID, err := extractGuildID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		memberID, err := extractMemberID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		c, err := fn(guildID, memberID)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		// Role convergence failures are logged upstream and never fail
		// the read.
		_ = sync(guildID, memberID)

		respondJSON(w, http.StatusOK, &payloadInviteCounts{
			Fake:    c.Fake,
			Genuine: c.Genuine,
			Left:    c.Left,
			Net:     c.Net,
		})
	}
}

type payloadInviteCounts struct {
	Fake    int `json:"fake"`
	Genuine int `json:"genuine"`
	Left    int `json:"left"`
	Net     int `json:"net"`
}
