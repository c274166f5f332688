package total

import (
	"sort"
	"time"
)

type memService struct {
	totals map[string]map[uint64]*Total
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		totals: map[string]map[uint64]*Total{},
	}
}

func (s *memService) CreditFake(ns string, inviterID uint64) error {
	t, err := s.seed(ns, inviterID)
	if err != nil {
		return err
	}

	t.Fake++
	t.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *memService) CreditGenuine(ns string, inviterID uint64) error {
	t, err := s.seed(ns, inviterID)
	if err != nil {
		return err
	}

	t.Genuine++
	t.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *memService) CreditLeft(ns string, inviterID uint64) error {
	t, err := s.seed(ns, inviterID)
	if err != nil {
		return err
	}

	t.Left++
	t.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *memService) Net(ns string, inviterID uint64) (int, error) {
	if err := s.Setup(ns); err != nil {
		return 0, err
	}

	t, ok := s.totals[ns][inviterID]
	if !ok {
		return 0, nil
	}

	return t.Net(), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	ts := List{}

	for id, t := range s.totals[ns] {
		if !inIDs(id, opts.InviterIDs) {
			continue
		}

		ts = append(ts, copyTotal(t))
	}

	sort.Slice(ts, func(i, j int) bool {
		return ts[i].InviterID < ts[j].InviterID
	})

	return ts, nil
}

func (s *memService) Top(ns string, limit uint) (List, error) {
	ts, err := s.Query(ns, QueryOptions{})
	if err != nil {
		return nil, err
	}

	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Net() == ts[j].Net() {
			return ts[i].InviterID < ts[j].InviterID
		}

		return ts[i].Net() > ts[j].Net()
	})

	if uint(len(ts)) > limit {
		ts = ts[:limit]
	}

	return ts, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.totals[ns]; !ok {
		s.totals[ns] = map[uint64]*Total{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.totals[ns]; ok {
		delete(s.totals, ns)
	}

	return nil
}

func (s *memService) seed(ns string, inviterID uint64) (*Total, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if inviterID == 0 {
		return nil, wrapError(ErrInvalidTotal, "inviter id must be set")
	}

	t, ok := s.totals[ns][inviterID]
	if !ok {
		now := time.Now().UTC()

		t = &Total{
			InviterID: inviterID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		s.totals[ns][inviterID] = t
	}

	return t, nil
}

func copyTotal(t *Total) *Total {
	old := *t
	return &old
}

func inIDs(id uint64, ids []uint64) bool {
	if len(ids) == 0 {
		return true
	}

	keep := false

	for _, i := range ids {
		if id == i {
			keep = true
			break
		}
	}

	return keep
}
