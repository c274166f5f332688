package invite

import (
	"testing"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testInvite(code string, uses int) *Invite {
	return &Invite{
		Code: code,
		Uses: uses,
	}
}

func testServiceDelete(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_delete"
		service   = p(t, namespace)
	)

	_, err := service.Put(namespace, testInvite("delete1", 3))
	if err != nil {
		t.Fatal(err)
	}

	if err := service.Delete(namespace, "delete1"); err != nil {
		t.Fatal(err)
	}

	is, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// Deleting an unknown code is a no-op.
	if err := service.Delete(namespace, "delete1"); err != nil {
		t.Fatal(err)
	}
}

func testServiceIncrement(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_increment"
		service   = p(t, namespace)
	)

	_, err := service.Put(namespace, testInvite("incr1", 0))
	if err != nil {
		t.Fatal(err)
	}

	if err := service.Increment(namespace, "incr1"); err != nil {
		t.Fatal(err)
	}

	is, err := service.Query(namespace, QueryOptions{
		Codes: []string{
			"incr1",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := is[0].Uses, 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	err = service.Increment(namespace, "missing")
	if !IsNotFound(err) {
		t.Errorf("have %v, want %v", err, ErrNotFound)
	}
}

func testServicePut(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testInvite("put1", 2))
	if err != nil {
		t.Fatal(err)
	}

	if have, want := created.Uses, 2; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// Upsert overwrites the use count.
	updated, err := service.Put(namespace, testInvite("put1", 5))
	if err != nil {
		t.Fatal(err)
	}

	if have, want := updated.Uses, 5; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	is, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	_, err = service.Put(namespace, testInvite("not a code", 0))
	if !IsInvalidInvite(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidInvite)
	}

	_, err = service.Put(namespace, testInvite("put2", -1))
	if !IsInvalidInvite(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidInvite)
	}
}

func testServiceQuery(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_query"
		service   = p(t, namespace)
	)

	for _, i := range (List{
		testInvite("charlie", 7),
		testInvite("alpha", 1),
		testInvite("bravo", 4),
	}) {
		_, err := service.Put(namespace, i)
		if err != nil {
			t.Fatal(err)
		}
	}

	is, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 3; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	// Iteration order is the attribution order, ascending by code.
	for idx, want := range []string{"alpha", "bravo", "charlie"} {
		if have := is[idx].Code; have != want {
			t.Errorf("have %v, want %v", have, want)
		}
	}

	is, err = service.Query(namespace, QueryOptions{
		Codes: []string{
			"bravo",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := is[0].Uses, 4; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func testServiceTeardown(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_teardown"
		service   = p(t, namespace)
	)

	_, err := service.Put(namespace, testInvite("gone1", 1))
	if err != nil {
		t.Fatal(err)
	}

	if err := service.Teardown(namespace); err != nil {
		t.Fatal(err)
	}

	is, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(is), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
