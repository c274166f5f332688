package event

import "testing"

func TestEventValidate(t *testing.T) {
	e := &Event{
		Type:    TypeMemberJoined,
		GuildID: 123,
	}

	if err := e.Validate(); err != nil {
		t.Fatal(err)
	}

	err := (&Event{GuildID: 123}).Validate()
	if !IsInvalidEvent(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEvent)
	}

	err = (&Event{Type: TypeMemberLeft}).Validate()
	if !IsInvalidEvent(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEvent)
	}
}

func TestNopSourceConsume(t *testing.T) {
	s := NopSource()

	_, err := s.Consume()
	if !IsEmptySource(err) {
		t.Errorf("have %v, want %v", err, ErrEmptySource)
	}

	if err := s.Ack("id"); err != nil {
		t.Fatal(err)
	}
}
