package chat

// Member is the platform's view of a community member, including the roles
// currently held.
type Member struct {
	ID          uint64
	DisplayName string
	Roles       []uint64
}

// HoldsRole indicates if the member currently holds the given role.
func (m *Member) HoldsRole(roleID uint64) bool {
	for _, id := range m.Roles {
		if id == roleID {
			return true
		}
	}

	return false
}

// Service abstracts the chat platform collaborator. The engine only ever
// reads role membership and issues role commands, it is never given write
// access to any other platform state.
type Service interface {
	Member(guildID, memberID uint64) (*Member, error)
	GrantRole(guildID, memberID, roleID uint64) error
	RevokeRole(guildID, memberID, roleID uint64) error
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service
