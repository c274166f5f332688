package joined

import (
	"sort"
	"time"
)

type memService struct {
	joins map[string]map[uint64]*Join
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		joins: map[string]map[uint64]*Join{},
	}
}

func (s *memService) Delete(ns string, joinerID uint64) error {
	if err := s.Setup(ns); err != nil {
		return err
	}

	delete(s.joins[ns], joinerID)

	return nil
}

func (s *memService) Put(ns string, input *Join) (*Join, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if old, ok := s.joins[ns][input.JoinerID]; ok {
		return copyJoin(old), nil
	}

	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now().UTC()
	}

	s.joins[ns][input.JoinerID] = copyJoin(input)

	return copyJoin(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	js := List{}

	for id, j := range s.joins[ns] {
		if !inIDs(id, opts.JoinerIDs) {
			continue
		}

		js = append(js, copyJoin(j))
	}

	sort.Slice(js, func(i, j int) bool {
		return js[i].JoinerID < js[j].JoinerID
	})

	return js, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.joins[ns]; !ok {
		s.joins[ns] = map[uint64]*Join{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.joins[ns]; ok {
		delete(s.joins, ns)
	}

	return nil
}

func copyJoin(j *Join) *Join {
	old := *j
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
