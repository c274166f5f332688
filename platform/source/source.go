package source

// Acker abstracts acknowledgement of consumed messages.
type Acker interface {
	Ack(id string) error
}
