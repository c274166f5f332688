package service

// Lifecycle encodes the functionality necessary to control the full lifecycle
// of a data service, from first write for a new community to full teardown
// when the community is gone.
type Lifecycle interface {
	Setup(namespace string) error
	Teardown(namespace string) error
}
