package total

import (
	"time"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/service"
)

// Total carries the running credit counts of a single inviter inside a
// community. The counts only ever grow, standing is always derived.
type Total struct {
	InviterID uint64    `json:"inviter_id"`
	Genuine   int       `json:"genuine"`
	Left      int       `json:"left"`
	Fake      int       `json:"fake"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Net returns the standing of the inviter, genuine credits reduced by
// departures and fakes.
func (t *Total) Net() int {
	return t.Genuine - t.Left - t.Fake
}

// List is a collection of Totals.
type List []*Total

// InviterIDs returns the list of inviter ids in iteration order.
func (l List) InviterIDs() []uint64 {
	ids := []uint64{}

	for _, t := range l {
		ids = append(ids, t.InviterID)
	}

	return ids
}

// QueryOptions is used to narrow-down total queries.
type QueryOptions struct {
	InviterIDs []uint64
}

// Service for total interactions.
type Service interface {
	service.Lifecycle

	CreditFake(namespace string, inviterID uint64) error
	CreditGenuine(namespace string, inviterID uint64) error
	CreditLeft(namespace string, inviterID uint64) error
	Net(namespace string, inviterID uint64) (int, error)
	Query(namespace string, opts QueryOptions) (List, error)
	Top(namespace string, limit uint) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service
