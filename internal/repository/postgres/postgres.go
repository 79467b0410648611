package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/tables"
)

//go:embed schema.sql
var schemaSQL string

// PostgresRepository implements domain.ScenarioStore
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the scenario tables if they don't exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// List returns the stored scenario names
func (r *PostgresRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list scenarios: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan scenario names: %w", err)
	}
	return names, nil
}

// Import replaces the stored tables of a scenario, copying rows in bulk
func (r *PostgresRepository) Import(ctx context.Context, name string, raw []domain.RawTable) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("postgres: failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scenarios WHERE name = $1`, name); err != nil {
		return "", fmt.Errorf("postgres: failed to clear scenario %s: %w", name, err)
	}

	importID := uuid.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO scenarios (name, import_id) VALUES ($1, $2)`,
		name, importID.String(),
	); err != nil {
		return "", fmt.Errorf("postgres: failed to insert scenario %s: %w", name, err)
	}

	for _, t := range raw {
		if _, err := tx.Exec(ctx,
			`INSERT INTO scenario_tables (scenario, table_name, columns) VALUES ($1, $2, $3)`,
			name, t.Name, t.Columns,
		); err != nil {
			return "", fmt.Errorf("postgres: failed to insert table %s: %w", t.Name, err)
		}

		rows := t.Rows
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"scenario_rows"},
			[]string{"scenario", "table_name", "row_num", "cells"},
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				return []any{name, t.Name, int32(i), rows[i]}, nil
			}),
		)
		if err != nil {
			return "", fmt.Errorf("postgres: failed to copy rows of %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("postgres: failed to commit import of %s: %w", name, err)
	}
	return importID.String(), nil
}

// Load reads back the raw tables of a scenario and decodes them
func (r *PostgresRepository) Load(ctx context.Context, name string) (*domain.ScenarioData, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT true FROM scenarios WHERE name = $1`, name).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres: %w: %s", domain.ErrScenarioNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to look up scenario %s: %w", name, err)
	}

	trows, err := r.pool.Query(ctx,
		`SELECT table_name, columns FROM scenario_tables WHERE scenario = $1 ORDER BY table_name`, name)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query tables of %s: %w", name, err)
	}
	raw, err := pgx.CollectRows(trows, func(row pgx.CollectableRow) (domain.RawTable, error) {
		var t domain.RawTable
		err := row.Scan(&t.Name, &t.Columns)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan tables of %s: %w", name, err)
	}
	pos := make(map[string]int, len(raw))
	for i, t := range raw {
		pos[t.Name] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT table_name, cells FROM scenario_rows WHERE scenario = $1 ORDER BY table_name, row_num`, name)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query rows of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tableName string
		var cells []string
		if err := rows.Scan(&tableName, &cells); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan row: %w", err)
		}
		if i, ok := pos[tableName]; ok {
			raw[i].Rows = append(raw[i].Rows, cells)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read rows of %s: %w", name, err)
	}

	data, err := tables.Decode(name, raw)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return data, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
