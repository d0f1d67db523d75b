package history

import (
	"context"
	"database/sql"
)

// PostgresStore implements ReadingStore on database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the readings table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS readings (
			id UUID PRIMARY KEY,
			read_at TIMESTAMPTZ NOT NULL,
			address TEXT NOT NULL,
			temperature_deci_c INTEGER NOT NULL
		)`)
	return err
}

func (s *PostgresStore) SaveReading(ctx context.Context, arg SaveReadingParams) (Reading, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO readings (id, read_at, address, temperature_deci_c) VALUES ($1, $2, $3, $4)`,
		arg.ID, arg.ReadAt, arg.Address, arg.TempDeciC)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		ID:        arg.ID,
		ReadAt:    arg.ReadAt,
		Address:   arg.Address,
		TempDeciC: arg.TempDeciC,
	}, nil
}

func (s *PostgresStore) RecentReadings(ctx context.Context, limit int) ([]Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, read_at, address, temperature_deci_c FROM readings ORDER BY read_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	readings := make([]Reading, 0, limit)
	for rows.Next() {
		var r Reading
		if err := rows.Scan(&r.ID, &r.ReadAt, &r.Address, &r.TempDeciC); err != nil {
			return nil, err
		}

		readings = append(readings, r)
	}

	return readings, rows.Err()
}
