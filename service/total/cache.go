package total

import (
	"fmt"
	"strings"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/cache"
)

const (
	cachePrefixNet = "totals.net"
)

type cacheService struct {
	netCache cache.CountService
	next     Service
}

// CacheServiceMiddleware adds caching capabilities to the Service by using
// read-through and write-through methods to keep inviter standings hot, as
// they gate every tier decision.
func CacheServiceMiddleware(netCache cache.CountService) ServiceMiddleware {
	return func(next Service) Service {
		return &cacheService{
			netCache: netCache,
			next:     next,
		}
	}
}

func (s *cacheService) CreditFake(ns string, inviterID uint64) error {
	err := s.next.CreditFake(ns, inviterID)
	if err != nil {
		return err
	}

	s.adjust(ns, inviterID, -1)

	return nil
}

func (s *cacheService) CreditGenuine(ns string, inviterID uint64) error {
	err := s.next.CreditGenuine(ns, inviterID)
	if err != nil {
		return err
	}

	s.adjust(ns, inviterID, 1)

	return nil
}

func (s *cacheService) CreditLeft(ns string, inviterID uint64) error {
	err := s.next.CreditLeft(ns, inviterID)
	if err != nil {
		return err
	}

	s.adjust(ns, inviterID, -1)

	return nil
}

func (s *cacheService) Net(ns string, inviterID uint64) (int, error) {
	key := cacheNetKey(inviterID)

	net, err := s.netCache.Get(ns, key)
	if err == nil {
		return net, nil
	}

	net, err = s.next.Net(ns, inviterID)
	if err != nil {
		return 0, err
	}

	if err := s.netCache.Set(ns, key, net); err != nil {
		// We ignore the error of the cache operation.
	}

	return net, nil
}

func (s *cacheService) Query(ns string, opts QueryOptions) (List, error) {
	return s.next.Query(ns, opts)
}

func (s *cacheService) Top(ns string, limit uint) (List, error) {
	return s.next.Top(ns, limit)
}

func (s *cacheService) Setup(ns string) error {
	return s.next.Setup(ns)
}

func (s *cacheService) Teardown(ns string) error {
	if err := s.next.Teardown(ns); err != nil {
		return err
	}

	if err := s.netCache.Purge(ns); err != nil {
		// We ignore the error of the cache operation.
	}

	return nil
}

// adjust moves a cached standing by delta. Keys that are not warm are left
// untouched, incrementing an absent key would restart the count at the delta
// and serve that as the standing until expiry.
func (s *cacheService) adjust(ns string, inviterID uint64, delta int) {
	key := cacheNetKey(inviterID)

	if _, err := s.netCache.Get(ns, key); err != nil {
		// We ignore the error of the cache operation.
		return
	}

	var err error

	if delta > 0 {
		_, err = s.netCache.Incr(ns, key)
	} else {
		_, err = s.netCache.Decr(ns, key)
	}
	if err != nil {
		// We ignore the error of the cache operation.
	}
}

func cacheNetKey(inviterID uint64) string {
	ps := []string{
		cachePrefixNet,
		fmt.Sprintf("%d", inviterID),
	}

	return strings.Join(ps, cache.KeySeparator)
}
