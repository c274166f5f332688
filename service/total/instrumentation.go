package total

import (
	"time"

	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/metrics"
)

const serviceName = "total"

type instrumentService struct {
	component string
	errCount  kitmetrics.Counter
	next      Service
	opCount   kitmetrics.Counter
	opLatency *prometheus.HistogramVec
	store     string
}

// InstrumentServiceMiddleware observes key aspects of Service operations and
// exposes Prometheus metrics.
func InstrumentServiceMiddleware(
	component, store string,
	errCount kitmetrics.Counter,
	opCount kitmetrics.Counter,
	opLatency *prometheus.HistogramVec,
) ServiceMiddleware {
	return func(next Service) Service {
		return &instrumentService{
			component: component,
			errCount:  errCount,
			next:      next,
			opCount:   opCount,
			opLatency: opLatency,
			store:     store,
		}
	}
}

func (s *instrumentService) CreditFake(ns string, inviterID uint64) (err error) {
	defer func(begin time.Time) {
		s.track("CreditFake", ns, begin, err)
	}(time.Now())

	return s.next.CreditFake(ns, inviterID)
}

func (s *instrumentService) CreditGenuine(
	ns string,
	inviterID uint64,
) (err error) {
	defer func(begin time.Time) {
		s.track("CreditGenuine", ns, begin, err)
	}(time.Now())

	return s.next.CreditGenuine(ns, inviterID)
}

func (s *instrumentService) CreditLeft(ns string, inviterID uint64) (err error) {
	defer func(begin time.Time) {
		s.track("CreditLeft", ns, begin, err)
	}(time.Now())

	return s.next.CreditLeft(ns, inviterID)
}

func (s *instrumentService) Net(
	ns string,
	inviterID uint64,
) (net int, err error) {
	defer func(begin time.Time) {
		s.track("Net", ns, begin, err)
	}(time.Now())

	return s.next.Net(ns, inviterID)
}

func (s *instrumentService) Query(
	ns string,
	opts QueryOptions,
) (list List, err error) {
	defer func(begin time.Time) {
		s.track("Query", ns, begin, err)
	}(time.Now())

	return s.next.Query(ns, opts)
}

func (s *instrumentService) Top(ns string, limit uint) (list List, err error) {
	defer func(begin time.Time) {
		s.track("Top", ns, begin, err)
	}(time.Now())

	return s.next.Top(ns, limit)
}

func (s *instrumentService) Setup(ns string) (err error) {
	defer func(begin time.Time) {
		s.track("Setup", ns, begin, err)
	}(time.Now())

	return s.next.Setup(ns)
}

func (s *instrumentService) Teardown(ns string) (err error) {
	defer func(begin time.Time) {
		s.track("Teardown", ns, begin, err)
	}(time.Now())

	return s.next.Teardown(ns)
}

func (s *instrumentService) track(
	method, namespace string,
	begin time.Time,
	err error,
) {
	if err != nil {
		s.errCount.With(
			metrics.FieldComponent, s.component,
			metrics.FieldMethod, method,
			metrics.FieldNamespace, namespace,
			metrics.FieldService, serviceName,
			metrics.FieldStore, s.store,
		).Add(1)
	}

	s.opCount.With(
		metrics.FieldComponent, s.component,
		metrics.FieldMethod, method,
		metrics.FieldNamespace, namespace,
		metrics.FieldService, serviceName,
		metrics.FieldStore, s.store,
	).Add(1)

	s.opLatency.With(prometheus.Labels{
		metrics.FieldComponent: s.component,
		metrics.FieldMethod:    method,
		metrics.FieldNamespace: namespace,
		metrics.FieldService:   serviceName,
		metrics.FieldStore:     s.store,
	}).Observe(time.Since(begin).Seconds())
}
