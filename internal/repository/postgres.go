package repository

import (
	"context"
	"fmt"

	"github.com/kimuray/pcs-gen/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS prefs (
		id SMALLINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		UNIQUE (id, name)
	);
	CREATE TABLE IF NOT EXISTS cities (
		code VARCHAR(16) NOT NULL,
		pref_id SMALLINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		UNIQUE (code, name, pref_id)
	);
	CREATE TABLE IF NOT EXISTS towns (
		id INTEGER PRIMARY KEY,
		city_code VARCHAR(16) NOT NULL,
		zip_code VARCHAR(16) NOT NULL,
		area_name VARCHAR(255) NOT NULL,
		street_name VARCHAR(255) NOT NULL
	);
	CREATE INDEX IF NOT EXISTS towns_zip_code_idx ON towns (zip_code);
	CREATE INDEX IF NOT EXISTS cities_pref_id_idx ON cities (pref_id);
`

// Repository implements the table repository interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the prefs, cities and towns tables if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// ReplaceAll empties the three tables and runs script in the same transaction.
// script may hold several statements; it is sent with the simple protocol.
func (r *Repository) ReplaceAll(ctx context.Context, script string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE towns, cities, prefs"); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
		if script == "" {
			return nil
		}
		if _, err := tx.Exec(ctx, script); err != nil {
			return fmt.Errorf("failed to execute script: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	return nil
}

// CountRows returns the number of rows in each table
func (r *Repository) CountRows(ctx context.Context) (models.RowCounts, error) {
	sql := `
		SELECT
			(SELECT COUNT(*) FROM prefs),
			(SELECT COUNT(*) FROM cities),
			(SELECT COUNT(*) FROM towns)
	`

	var counts models.RowCounts
	err := r.db.QueryRow(ctx, sql).Scan(&counts.Prefectures, &counts.Cities, &counts.Towns)
	if err != nil {
		return models.RowCounts{}, fmt.Errorf("repository: failed to count rows: %w", err)
	}
	return counts, nil
}

// FindTownsByZipCode returns the towns stored under a postal code, ordered by id
func (r *Repository) FindTownsByZipCode(ctx context.Context, zipCode string) ([]models.Town, error) {
	sql := `
		SELECT id, zip_code, area_name, street_name, city_code
		FROM towns
		WHERE zip_code = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql, zipCode)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute town query: %w", err)
	}
	defer rows.Close()

	towns := []models.Town{}
	for rows.Next() {
		var town models.Town
		var id int32
		if err := rows.Scan(&id, &town.ZipCode, &town.AreaName, &town.StreetName, &town.CityCode); err != nil {
			return nil, fmt.Errorf("repository: failed to scan town: %w", err)
		}
		town.ID = uint32(id)
		towns = append(towns, town)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return towns, nil
}
