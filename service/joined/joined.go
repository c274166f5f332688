package joined

import (
	"time"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/service"
)

// Join records which inviter brought a member into the community. Only the
// first attribution of a member is kept, later joins never overwrite it.
type Join struct {
	InviterID uint64    `json:"inviter_id"`
	JoinerID  uint64    `json:"joiner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate performs semantic checks on the passed Join for correctness.
func (j *Join) Validate() error {
	if j.InviterID == 0 {
		return wrapError(ErrInvalidJoin, "inviter id must be set")
	}

	if j.JoinerID == 0 {
		return wrapError(ErrInvalidJoin, "joiner id must be set")
	}

	return nil
}

// List is a collection of Joins.
type List []*Join

// QueryOptions is used to narrow-down join queries.
type QueryOptions struct {
	JoinerIDs []uint64
}

// Service for join provenance interactions.
type Service interface {
	service.Lifecycle

	Delete(namespace string, joinerID uint64) error
	Put(namespace string, join *Join) (*Join, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service
