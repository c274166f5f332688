package invite

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/pg"
)

const (
	pgUpsertInvite = `INSERT INTO %s.invites (code, uses, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE
		SET uses = EXCLUDED.uses, updated_at = EXCLUDED.updated_at`
	pgIncrementInvite = `UPDATE %s.invites
		SET uses = uses + 1, updated_at = $2
		WHERE code = $1`
	pgDeleteInvite = `DELETE FROM %s.invites WHERE code = $1`

	pgClauseCodes = `code IN (?)`

	pgListInvites = `SELECT code, uses, created_at, updated_at FROM %s.invites
		%s
		ORDER BY code ASC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.invites (
		code TEXT NOT NULL,
		uses INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.invites`

	pgIndexCode = `CREATE UNIQUE INDEX %s ON %s.invites (code)`
)

type pgService struct {
	db *sqlx.DB
}

// PostgresService returns a Postgres based Service implementation.
func PostgresService(db *sqlx.DB) Service {
	return &pgService{db: db}
}

func (s *pgService) Delete(ns, code string) error {
	return s.exec(ns, pgDeleteInvite, code)
}

func (s *pgService) Increment(ns, code string) error {
	var (
		now   = time.Now().UTC()
		query = wrapNamespace(pgIncrementInvite, ns)
	)

	res, err := s.db.Exec(query, code, now)
	if err != nil {
		if !pg.IsRelationNotFound(pg.WrapError(err)) {
			return err
		}

		if err := s.Setup(ns); err != nil {
			return err
		}

		res, err = s.db.Exec(query, code, now)
		if err != nil {
			return err
		}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return wrapError(ErrNotFound, "code '%s'", code)
	}

	return nil
}

func (s *pgService) Put(ns string, input *Invite) (*Invite, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if input.CreatedAt.IsZero() {
		input.CreatedAt = now
	}
	input.CreatedAt = input.CreatedAt.UTC()
	input.UpdatedAt = now

	err := s.exec(
		ns,
		pgUpsertInvite,
		input.Code,
		input.Uses,
		input.CreatedAt,
		input.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return input, nil
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if len(opts.Codes) > 0 {
		ps := []interface{}{}

		for _, code := range opts.Codes {
			ps = append(ps, code)
		}

		clause, _, err := sqlx.In(pgClauseCodes, ps)
		if err != nil {
			return nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
	}

	where := ""

	if len(clauses) > 0 {
		where = sqlx.Rebind(sqlx.DOLLAR, pg.ClausesToWhere(clauses...))
	}

	return s.listInvites(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		wrapNamespace(pgCreateSchema, ns),
		wrapNamespace(pgCreateTable, ns),
		pg.GuardIndex(ns, "invite_code", pgIndexCode),
	}

	for _, query := range qs {
		_, err := s.db.Exec(query)
		if err != nil {
			return fmt.Errorf("query (%s): %s", query, err)
		}
	}

	return nil
}

func (s *pgService) Teardown(ns string) error {
	qs := []string{
		wrapNamespace(pgDropTable, ns),
	}

	for _, query := range qs {
		_, err := s.db.Exec(query)
		if err != nil {
			return fmt.Errorf("query (%s): %s", query, err)
		}
	}

	return nil
}

func (s *pgService) exec(ns, query string, params ...interface{}) error {
	query = wrapNamespace(query, ns)

	_, err := s.db.Exec(query, params...)
	if err != nil {
		if !pg.IsRelationNotFound(pg.WrapError(err)) {
			return err
		}

		if err := s.Setup(ns); err != nil {
			return err
		}

		_, err = s.db.Exec(query, params...)
	}

	return err
}

func (s *pgService) listInvites(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListInvites, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if !pg.IsRelationNotFound(pg.WrapError(err)) {
			return nil, err
		}

		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		rows, err = s.db.Query(query, params...)
		if err != nil {
			return nil, err
		}
	}
	defer rows.Close()

	is := List{}

	for rows.Next() {
		var (
			invite = &Invite{}

			createdAt time.Time
			updatedAt time.Time
		)

		err := rows.Scan(
			&invite.Code,
			&invite.Uses,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		invite.CreatedAt = createdAt.UTC()
		invite.UpdatedAt = updatedAt.UTC()

		is = append(is, invite)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return is, nil
}

func wrapNamespace(query, namespace string) string {
	return fmt.Sprintf(query, namespace)
}
