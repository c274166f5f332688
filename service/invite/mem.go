package invite

import (
	"time"
)

type memService struct {
	invites map[string]map[string]*Invite
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		invites: map[string]map[string]*Invite{},
	}
}

func (s *memService) Delete(ns, code string) error {
	if err := s.Setup(ns); err != nil {
		return err
	}

	delete(s.invites[ns], code)

	return nil
}

func (s *memService) Increment(ns, code string) error {
	if err := s.Setup(ns); err != nil {
		return err
	}

	i, ok := s.invites[ns][code]
	if !ok {
		return wrapError(ErrNotFound, "code '%s'", code)
	}

	i.Uses++
	i.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *memService) Put(ns string, input *Invite) (*Invite, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if old, ok := s.invites[ns][input.Code]; ok {
		input.CreatedAt = old.CreatedAt
	} else if input.CreatedAt.IsZero() {
		input.CreatedAt = now
	}

	input.UpdatedAt = now

	s.invites[ns][input.Code] = copyInvite(input)

	return copyInvite(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	is := List{}

	for code, i := range s.invites[ns] {
		if !inCodes(code, opts.Codes) {
			continue
		}

		is = append(is, copyInvite(i))
	}

	return is.Sort(), nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.invites[ns]; !ok {
		s.invites[ns] = map[string]*Invite{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.invites[ns]; ok {
		delete(s.invites, ns)
	}

	return nil
}

func copyInvite(i *Invite) *Invite {
	old := *i
	return &old
}

func inCodes(code string, cs []string) bool {
	if len(cs) == 0 {
		return true
	}

	keep := false

	for _, c := range cs {
		if code == c {
			keep = true
			break
		}
	}

	return keep
}
