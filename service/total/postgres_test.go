// +build integration

package total

import (
	"flag"
	"fmt"
	"os/user"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/pg"
)

var pgTestURL string

func TestPostgresCredit(t *testing.T) {
	testServiceCredit(t, preparePostgres)
}

func TestPostgresNet(t *testing.T) {
	testServiceNet(t, preparePostgres)
}

func TestPostgresTop(t *testing.T) {
	testServiceTop(t, preparePostgres)
}

func TestPostgresTeardown(t *testing.T) {
	testServiceTeardown(t, preparePostgres)
}

func preparePostgres(t *testing.T, namespace string) Service {
	db, err := sqlx.Connect("postgres", pgTestURL)
	if err != nil {
		t.Fatal(err)
	}

	s := PostgresService(db)

	if err := s.Teardown(namespace); err != nil {
		t.Fatal(err)
	}

	return s
}

func init() {
	u, err := user.Current()
	if err != nil {
		panic(err)
	}

	d := fmt.Sprintf(pg.URLTest, u.Username)

	url := flag.String("postgres.url", d, "Postgres test connection URL")
	flag.Parse()

	pgTestURL = *url
}
