package joined

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/pg"
)

const (
	// First attribution wins, later joins of the same member are dropped.
	pgInsertJoin = `INSERT INTO %s.joined (inviter_id, joiner_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (joiner_id) DO NOTHING`
	pgDeleteJoin = `DELETE FROM %s.joined WHERE joiner_id = $1`

	pgClauseJoinerIDs = `joiner_id IN (?)`

	pgListJoins = `SELECT inviter_id, joiner_id, created_at FROM %s.joined
		%s
		ORDER BY joiner_id ASC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.joined (
		inviter_id BIGINT NOT NULL,
		joiner_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.joined`

	pgIndexJoiner = `CREATE UNIQUE INDEX %s ON %s.joined (joiner_id)`
)

type pgService struct {
	db *sqlx.DB
}

// PostgresService returns a Postgres based Service implementation.
func PostgresService(db *sqlx.DB) Service {
	return &pgService{db: db}
}

func (s *pgService) Delete(ns string, joinerID uint64) error {
	return s.exec(ns, pgDeleteJoin, joinerID)
}

func (s *pgService) Put(ns string, input *Join) (*Join, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now().UTC()
	}
	input.CreatedAt = input.CreatedAt.UTC()

	err := s.exec(
		ns,
		pgInsertJoin,
		input.InviterID,
		input.JoinerID,
		input.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	js, err := s.Query(ns, QueryOptions{
		JoinerIDs: []uint64{
			input.JoinerID,
		},
	})
	if err != nil {
		return nil, err
	}

	if len(js) == 1 {
		return js[0], nil
	}

	return input, nil
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if len(opts.JoinerIDs) > 0 {
		ps := []interface{}{}

		for _, id := range opts.JoinerIDs {
			ps = append(ps, id)
		}

		clause, _, err := sqlx.In(pgClauseJoinerIDs, ps)
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

	return s.listJoins(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		wrapNamespace(pgCreateSchema, ns),
		wrapNamespace(pgCreateTable, ns),
		pg.GuardIndex(ns, "joined_joiner", pgIndexJoiner),
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

func (s *pgService) listJoins(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListJoins, ns, where)

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

	js := List{}

	for rows.Next() {
		var (
			join = &Join{}

			createdAt time.Time
		)

		err := rows.Scan(
			&join.InviterID,
			&join.JoinerID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		join.CreatedAt = createdAt.UTC()

		js = append(js, join)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return js, nil
}

func wrapNamespace(query, namespace string) string {
	return fmt.Sprintf(query, namespace)
}
