package invite

import (
	"sort"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/service"
)

// Invite is the last known use-count snapshot of a community invite link.
// Attribution diffs these snapshots against the live counts delivered with a
// join event, so a stale snapshot is exactly one consumed use behind.
type Invite struct {
	Code      string    `json:"code"`
	Uses      int       `json:"uses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate performs semantic checks on the passed Invite for correctness.
func (i *Invite) Validate() error {
	if i.Code == "" {
		return wrapError(ErrInvalidInvite, "code must be set")
	}

	if !govalidator.IsAlphanumeric(i.Code) {
		return wrapError(ErrInvalidInvite, "invalid code '%s'", i.Code)
	}

	if i.Uses < 0 {
		return wrapError(ErrInvalidInvite, "uses must not be negative")
	}

	return nil
}

// List is a collection of invites ordered by code.
type List []*Invite

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].Code < l[j].Code
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// Sort orders the list by code ascending, the iteration order attribution
// relies on.
func (l List) Sort() List {
	sort.Sort(l)

	return l
}

// QueryOptions is used to narrow-down invite queries.
type QueryOptions struct {
	Codes []string
}

// Service for invite snapshot interactions.
type Service interface {
	service.Lifecycle

	Delete(namespace, code string) error
	Increment(namespace, code string) error
	Put(namespace string, invite *Invite) (*Invite, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service
