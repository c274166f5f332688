package chat

// MemService is a memory based Service implementation. Role commands mutate
// the held role set directly, which makes it suitable for tests and local
// runs without platform credentials.
type MemService struct {
	members map[uint64]map[uint64]*Member
}

// NewMemService returns a memory based Service implementation.
func NewMemService() *MemService {
	return &MemService{
		members: map[uint64]map[uint64]*Member{},
	}
}

func (s *MemService) Member(guildID, memberID uint64) (*Member, error) {
	m, ok := s.members[guildID][memberID]
	if !ok {
		return nil, wrapError(ErrMemberNotFound, "%d in guild %d", memberID, guildID)
	}

	return copyMember(m), nil
}

func (s *MemService) GrantRole(guildID, memberID, roleID uint64) error {
	m, ok := s.members[guildID][memberID]
	if !ok {
		return wrapError(ErrMemberNotFound, "%d in guild %d", memberID, guildID)
	}

	if !m.HoldsRole(roleID) {
		m.Roles = append(m.Roles, roleID)
	}

	return nil
}

func (s *MemService) RevokeRole(guildID, memberID, roleID uint64) error {
	m, ok := s.members[guildID][memberID]
	if !ok {
		return wrapError(ErrMemberNotFound, "%d in guild %d", memberID, guildID)
	}

	roles := []uint64{}

	for _, id := range m.Roles {
		if id == roleID {
			continue
		}

		roles = append(roles, id)
	}

	m.Roles = roles

	return nil
}

// SetMember seeds the guild with a member, replacing any existing state.
func (s *MemService) SetMember(guildID uint64, m *Member) {
	if _, ok := s.members[guildID]; !ok {
		s.members[guildID] = map[uint64]*Member{}
	}

	s.members[guildID][m.ID] = copyMember(m)
}

func copyMember(m *Member) *Member {
	old := *m
	old.Roles = append([]uint64{}, m.Roles...)

	return &old
}
