package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nameorigin/internal/popularity"
)

const schema = `
CREATE TABLE IF NOT EXISTS popularity_records (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	name_key     TEXT NOT NULL,
	country_code CHAR(2) NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS popularity_records_country_created_idx
	ON popularity_records (country_code, created_at);
`

// PostgresStore persists popularity records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the records table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate popularity_records: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, rec popularity.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO popularity_records (name, name_key, country_code, created_at)
		VALUES ($1, $2, $3, $4)
	`, rec.Name, popularity.NameKey(rec.Name), rec.CountryCode, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("append popularity record: %w", err)
	}
	return nil
}

// TopByCountry displays the first-seen spelling of each name.
func (s *PostgresStore) TopByCountry(ctx context.Context, country string, since time.Time, limit int) ([]popularity.PopularName, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT (array_agg(name ORDER BY id))[1], COUNT(*)
		FROM popularity_records
		WHERE country_code = $1 AND created_at >= $2
		GROUP BY name_key
		ORDER BY COUNT(*) DESC, MIN(id) ASC
		LIMIT $3
	`, country, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular names: %w", err)
	}
	defer rows.Close()

	out := make([]popularity.PopularName, 0, limit)
	for rows.Next() {
		var pn popularity.PopularName
		if err := rows.Scan(&pn.Name, &pn.Count); err != nil {
			return nil, fmt.Errorf("scan popular name: %w", err)
		}
		out = append(out, pn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular names: %w", err)
	}
	return out, nil
}
