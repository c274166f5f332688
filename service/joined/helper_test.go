package joined

import (
	"testing"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testJoin(inviterID, joinerID uint64) *Join {
	return &Join{
		InviterID: inviterID,
		JoinerID:  joinerID,
	}
}

func testServiceDelete(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_delete"
		service   = p(t, namespace)
	)

	_, err := service.Put(namespace, testJoin(1, 11))
	if err != nil {
		t.Fatal(err)
	}

	if err := service.Delete(namespace, 11); err != nil {
		t.Fatal(err)
	}

	js, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(js), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// Deleting an unknown member is a no-op.
	if err := service.Delete(namespace, 11); err != nil {
		t.Fatal(err)
	}
}

func testServicePut(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testJoin(1, 11))
	if err != nil {
		t.Fatal(err)
	}

	if have, want := created.InviterID, uint64(1); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	// The first attribution sticks, a rejoin through another inviter does
	// not overwrite it.
	kept, err := service.Put(namespace, testJoin(2, 11))
	if err != nil {
		t.Fatal(err)
	}

	if have, want := kept.InviterID, uint64(1); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	js, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(js), 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	_, err = service.Put(namespace, testJoin(0, 11))
	if !IsInvalidJoin(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidJoin)
	}

	_, err = service.Put(namespace, testJoin(1, 0))
	if !IsInvalidJoin(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidJoin)
	}
}

func testServiceQuery(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_query"
		service   = p(t, namespace)
	)

	for _, j := range (List{
		testJoin(1, 11),
		testJoin(1, 12),
		testJoin(2, 13),
	}) {
		_, err := service.Put(namespace, j)
		if err != nil {
			t.Fatal(err)
		}
	}

	js, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(js), 3; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	js, err = service.Query(namespace, QueryOptions{
		JoinerIDs: []uint64{
			13,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(js), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := js[0].InviterID, uint64(2); have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func testServiceTeardown(t *testing.T, p prepareFunc) {
	var (
		namespace = "service_teardown"
		service   = p(t, namespace)
	)

	_, err := service.Put(namespace, testJoin(1, 11))
	if err != nil {
		t.Fatal(err)
	}

	if err := service.Teardown(namespace); err != nil {
		t.Fatal(err)
	}

	js, err := service.Query(namespace, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(js), 0; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
