package event

import "time"

type nopSource struct{}

// NopSource returns a noop implementation of Source.
func NopSource() Source {
	return &nopSource{}
}

func (s *nopSource) Ack(id string) error {
	return nil
}

// Consume blocks briefly so the consume loop does not spin on an empty
// source.
func (s *nopSource) Consume() (*Event, error) {
	time.Sleep(time.Second)

	return nil, ErrEmptySource
}
