package total

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/pg"
)

const (
	// left is reserved in SQL, the column carrying it is named departed.
	pgCreditGenuine = `INSERT INTO %s.totals (inviter_id, genuine, departed, fake, created_at, updated_at)
		VALUES ($1, 1, 0, 0, $2, $2)
		ON CONFLICT (inviter_id) DO UPDATE
		SET genuine = totals.genuine + 1, updated_at = EXCLUDED.updated_at`
	pgCreditLeft = `INSERT INTO %s.totals (inviter_id, genuine, departed, fake, created_at, updated_at)
		VALUES ($1, 0, 1, 0, $2, $2)
		ON CONFLICT (inviter_id) DO UPDATE
		SET departed = totals.departed + 1, updated_at = EXCLUDED.updated_at`
	pgCreditFake = `INSERT INTO %s.totals (inviter_id, genuine, departed, fake, created_at, updated_at)
		VALUES ($1, 0, 0, 1, $2, $2)
		ON CONFLICT (inviter_id) DO UPDATE
		SET fake = totals.fake + 1, updated_at = EXCLUDED.updated_at`

	pgNet = `SELECT genuine - departed - fake FROM %s.totals
		WHERE inviter_id = $1`

	pgClauseInviterIDs = `inviter_id IN (?)`

	pgListTotals = `SELECT inviter_id, genuine, departed, fake, created_at, updated_at
		FROM %s.totals
		%s
		ORDER BY inviter_id ASC`
	pgTopTotals = `SELECT inviter_id, genuine, departed, fake, created_at, updated_at
		FROM %s.totals
		ORDER BY (genuine - departed - fake) DESC, inviter_id ASC
		LIMIT $1`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.totals (
		inviter_id BIGINT NOT NULL,
		genuine INT NOT NULL DEFAULT 0,
		departed INT NOT NULL DEFAULT 0,
		fake INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.totals`

	pgIndexInviter = `CREATE UNIQUE INDEX %s ON %s.totals (inviter_id)`
)

type pgService struct {
	db *sqlx.DB
}

// PostgresService returns a Postgres based Service implementation.
func PostgresService(db *sqlx.DB) Service {
	return &pgService{db: db}
}

func (s *pgService) CreditFake(ns string, inviterID uint64) error {
	return s.credit(ns, pgCreditFake, inviterID)
}

func (s *pgService) CreditGenuine(ns string, inviterID uint64) error {
	return s.credit(ns, pgCreditGenuine, inviterID)
}

func (s *pgService) CreditLeft(ns string, inviterID uint64) error {
	return s.credit(ns, pgCreditLeft, inviterID)
}

func (s *pgService) Net(ns string, inviterID uint64) (int, error) {
	var (
		net   = 0
		query = wrapNamespace(pgNet, ns)
	)

	err := s.db.QueryRow(query, inviterID).Scan(&net)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		if !pg.IsRelationNotFound(pg.WrapError(err)) {
			return 0, err
		}

		if err := s.Setup(ns); err != nil {
			return 0, err
		}

		err = s.db.QueryRow(query, inviterID).Scan(&net)
		if err != nil {
			if err == sql.ErrNoRows {
				return 0, nil
			}

			return 0, err
		}
	}

	return net, nil
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if len(opts.InviterIDs) > 0 {
		ps := []interface{}{}

		for _, id := range opts.InviterIDs {
			ps = append(ps, id)
		}

		clause, _, err := sqlx.In(pgClauseInviterIDs, ps)
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

	query := fmt.Sprintf(pgListTotals, ns, where)

	return s.listTotals(ns, query, params...)
}

func (s *pgService) Top(ns string, limit uint) (List, error) {
	query := wrapNamespace(pgTopTotals, ns)

	return s.listTotals(ns, query, limit)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		wrapNamespace(pgCreateSchema, ns),
		wrapNamespace(pgCreateTable, ns),
		pg.GuardIndex(ns, "total_inviter", pgIndexInviter),
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

func (s *pgService) credit(ns, query string, inviterID uint64) error {
	if inviterID == 0 {
		return wrapError(ErrInvalidTotal, "inviter id must be set")
	}

	var (
		now = time.Now().UTC()
	)

	query = wrapNamespace(query, ns)

	_, err := s.db.Exec(query, inviterID, now)
	if err != nil {
		if !pg.IsRelationNotFound(pg.WrapError(err)) {
			return err
		}

		if err := s.Setup(ns); err != nil {
			return err
		}

		_, err = s.db.Exec(query, inviterID, now)
	}

	return err
}

func (s *pgService) listTotals(
	ns, query string,
	params ...interface{},
) (List, error) {
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

	ts := List{}

	for rows.Next() {
		var (
			total = &Total{}

			createdAt time.Time
			updatedAt time.Time
		)

		err := rows.Scan(
			&total.InviterID,
			&total.Genuine,
			&total.Left,
			&total.Fake,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		total.CreatedAt = createdAt.UTC()
		total.UpdatedAt = updatedAt.UTC()

		ts = append(ts, total)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ts, nil
}

func wrapNamespace(query, namespace string) string {
	return fmt.Sprintf(query, namespace)
}
