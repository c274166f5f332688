package total

import "testing"

func TestMemCredit(t *testing.T) {
	testServiceCredit(t, prepareMem)
}

func TestMemNet(t *testing.T) {
	testServiceNet(t, prepareMem)
}

func TestMemTop(t *testing.T) {
	testServiceTop(t, prepareMem)
}

func TestMemTeardown(t *testing.T) {
	testServiceTeardown(t, prepareMem)
}

func prepareMem(t *testing.T, namespace string) Service {
	s := MemService()

	if err := s.Setup(namespace); err != nil {
		t.Fatal(err)
	}

	return s
}
