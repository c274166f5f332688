package event

import (
	"time"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/source"
)

// Type variants delivered by the chat platform.
const (
	TypeCommunityJoined = "community_joined"
	TypeCommunityLeft   = "community_left"
	TypeInviteCreated   = "invite_created"
	TypeInviteDeleted   = "invite_deleted"
	TypeMemberJoined    = "member_joined"
	TypeMemberLeft      = "member_left"
)

// InviteUse is the live state of a single invite as reported by the platform
// at the time of the event, carrying the code owner for attribution.
type InviteUse struct {
	Code      string `json:"code"`
	InviterID uint64 `json:"inviter_id"`
	Uses      int    `json:"uses"`
}

// Event is a single occurrence inside a community as delivered by the chat
// platform gateway. Only the fields relevant for the carried Type are set.
type Event struct {
	Code            string      `json:"code"`
	GuildID         uint64      `json:"guild_id"`
	InviterID       uint64      `json:"inviter_id"`
	Invites         []InviteUse `json:"invites"`
	MemberCreatedAt time.Time   `json:"member_created_at"`
	MemberID        uint64      `json:"member_id"`
	Type            string      `json:"type"`
	Uses            int         `json:"uses"`

	AckID  string    `json:"-"`
	ID     string    `json:"-"`
	SentAt time.Time `json:"-"`
}

// Validate performs semantic checks on the passed Event for correctness.
func (e *Event) Validate() error {
	if e.Type == "" {
		return wrapError(ErrInvalidEvent, "type must be set")
	}

	if e.GuildID == 0 {
		return wrapError(ErrInvalidEvent, "guild id must be set")
	}

	return nil
}

// Consumer observes platform events.
type Consumer interface {
	Consume() (*Event, error)
}

// Source encapsulates event consumption operations.
type Source interface {
	source.Acker
	Consumer
}

// SourceMiddleware is a chainable behaviour modifier for Source.
type SourceMiddleware func(Source) Source
