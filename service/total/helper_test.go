package total

import (
	"testing"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServiceCredit(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_credit"
		service   = p(t, namespace)

		inviter uint64 = 101
	)

	for i := 0; i < 5; i++ {
		if err := service.CreditGenuine(namespace, inviter); err != nil {
			t.Fatal(err)
		}
	}

	if err := service.CreditLeft(namespace, inviter); err != nil {
		t.Fatal(err)
	}

	// A fake join carries both a genuine and a fake credit, so the standing
	// stays unchanged while the raw counts move.
	if err := service.CreditGenuine(namespace, inviter); err != nil {
		t.Fatal(err)
	}
	if err := service.CreditFake(namespace, inviter); err != nil {
		t.Fatal(err)
	}

	ts, err := service.Query(namespace, QueryOptions{
		InviterIDs: []uint64{
			inviter,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(ts), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := ts[0].Genuine, 6; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := ts[0].Left, 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := ts[0].Fake, 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := ts[0].Net(), 4; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	err = service.CreditGenuine(namespace, 0)
	if !IsInvalidTotal(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidTotal)
	}
}

func testServiceNet(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_net"
		service   = p(t, namespace)

		inviter uint64 = 202
	)

	// An inviter without credits holds a zero standing, not an error.
	net, err := service.Net(namespace, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := net, 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if err := service.CreditGenuine(namespace, inviter); err != nil {
		t.Fatal(err)
	}
	if err := service.CreditGenuine(namespace, inviter); err != nil {
		t.Fatal(err)
	}
	if err := service.CreditLeft(namespace, inviter); err != nil {
		t.Fatal(err)
	}

	net, err = service.Net(namespace, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := net, 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func testServiceTop(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_top"
		service   = p(t, namespace)
	)

	credit := func(id uint64, genuine, left, fake int) {
		for i := 0; i < genuine; i++ {
			if err := service.CreditGenuine(namespace, id); err != nil {
				t.Fatal(err)
			}
		}
		for i := 0; i < left; i++ {
			if err := service.CreditLeft(namespace, id); err != nil {
				t.Fatal(err)
			}
		}
		for i := 0; i < fake; i++ {
			if err := service.CreditFake(namespace, id); err != nil {
				t.Fatal(err)
			}
		}
	}

	credit(1, 3, 0, 0)
	credit(2, 5, 1, 1)
	credit(3, 8, 2, 3)
	credit(4, 1, 0, 0)

	ts, err := service.Top(namespace, 3)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(ts), 3; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	// Ties on the standing break towards the lower inviter id.
	for idx, want := range []uint64{1, 2, 3} {
		if have := ts[idx].InviterID; have != want {
			t.Errorf("have %v, want %v", have, want)
		}
	}

	if have, want := ts[0].Net(), 3; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func testServiceTeardown(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_teardown"
		service   = p(t, namespace)

		inviter uint64 = 303
	)

	if err := service.CreditGenuine(namespace, inviter); err != nil {
		t.Fatal(err)
	}

	// Read before teardown so any caching layer holds the standing.
	net, err := service.Net(namespace, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := net, 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if err := service.Teardown(namespace); err != nil {
		t.Fatal(err)
	}

	ts, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(ts), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	net, err = service.Net(namespace, inviter)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := net, 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
