package main

import (
	"github.com/go-kit/kit/log"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/core"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/event"
)

func consumeEvents(
	logger log.Logger,
	events event.Source,
	memberJoin core.MemberJoinFunc,
	memberLeave core.MemberLeaveFunc,
	inviteCreate core.InviteCreateFunc,
	inviteDelete core.InviteDeleteFunc,
	guildSetup core.GuildSetupFunc,
	guildTeardown core.GuildTeardownFunc,
	tierSync core.TierSyncFunc,
) {
	for {
		ev, err := events.Consume()
		if err != nil {
			if event.IsEmptySource(err) {
				continue
			}

			logger.Log("err", err, "method", "Consume")
			continue
		}

		err = handleEvent(
			ev,
			memberJoin,
			memberLeave,
			inviteCreate,
			inviteDelete,
			guildSetup,
			guildTeardown,
			tierSync,
		)
		if err != nil {
			// A failed event stays unacked for redelivery while the loop
			// moves on to the next one.
			logger.Log(
				"ack_id", ev.AckID,
				"err", err,
				"event", ev.Type,
				"guild_id", ev.GuildID,
			)
			continue
		}

		if err := events.Ack(ev.AckID); err != nil {
			logger.Log("ack_id", ev.AckID, "err", err, "method", "Ack")
		}
	}
}

func handleEvent(
	ev *event.Event,
	memberJoin core.MemberJoinFunc,
	memberLeave core.MemberLeaveFunc,
	inviteCreate core.InviteCreateFunc,
	inviteDelete core.InviteDeleteFunc,
	guildSetup core.GuildSetupFunc,
	guildTeardown core.GuildTeardownFunc,
	tierSync core.TierSyncFunc,
) error {
	switch ev.Type {
	case event.TypeCommunityJoined:
		return guildSetup(ev.GuildID, ev.Invites)
	case event.TypeCommunityLeft:
		return guildTeardown(ev.GuildID)
	case event.TypeInviteCreated:
		return inviteCreate(ev.GuildID, ev.Code, ev.Uses)
	case event.TypeInviteDeleted:
		return inviteDelete(ev.GuildID, ev.Code)
	case event.TypeMemberJoined:
		inviterID, err := memberJoin(
			ev.GuildID,
			ev.MemberID,
			ev.MemberCreatedAt,
			ev.Invites,
		)
		if err != nil {
			return err
		}

		if inviterID != 0 {
			_ = tierSync(ev.GuildID, inviterID)
			_ = tierSync(ev.GuildID, ev.MemberID)
		}

		return nil
	case event.TypeMemberLeft:
		inviterID, err := memberLeave(ev.GuildID, ev.MemberID)
		if err != nil {
			return err
		}

		if inviterID != 0 {
			_ = tierSync(ev.GuildID, inviterID)
		}

		return nil
	}

	// Unknown event types are acked and dropped.
	return nil
}
