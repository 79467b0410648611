// Package sqlite stores raw scenario tables in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/tables"
)

//go:embed schema.sql
var schemaSQL string

// Store implements domain.ScenarioStore on SQLite
type Store struct {
	conn    *sql.DB
	writeMu sync.Mutex
}

// Open opens (or creates) a database file with WAL mode and ensures the schema
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// one writer at a time
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.ensureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("Connected to SQLite database: %s", path)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("sqlite: failed to create schema: %w", err)
	}
	return nil
}

// Health checks the connection
func (s *Store) Health(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// List returns the stored scenario names in sorted order
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT name FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan scenario: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Import replaces every stored table of a scenario in one transaction
func (s *Store) Import(ctx context.Context, name string, raw []domain.RawTable) (string, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("sqlite: failed to begin import: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM scenario_rows WHERE scenario = ?`,
		`DELETE FROM scenario_tables WHERE scenario = ?`,
		`DELETE FROM scenarios WHERE name = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, name); err != nil {
			return "", fmt.Errorf("sqlite: failed to clear scenario %s: %w", name, err)
		}
	}

	importID := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scenarios (name, import_id, imported_at) VALUES (?, ?, ?)`,
		name, importID, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return "", fmt.Errorf("sqlite: failed to insert scenario %s: %w", name, err)
	}

	rowStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scenario_rows (scenario, table_name, row_num, cells) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("sqlite: failed to prepare row insert: %w", err)
	}
	defer rowStmt.Close()

	for _, t := range raw {
		columns, err := json.Marshal(t.Columns)
		if err != nil {
			return "", fmt.Errorf("sqlite: failed to encode columns of %s: %w", t.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scenario_tables (scenario, table_name, columns) VALUES (?, ?, ?)`,
			name, t.Name, string(columns),
		); err != nil {
			return "", fmt.Errorf("sqlite: failed to insert table %s: %w", t.Name, err)
		}

		for i, r := range t.Rows {
			cells, err := json.Marshal(r)
			if err != nil {
				return "", fmt.Errorf("sqlite: failed to encode row %d of %s: %w", i, t.Name, err)
			}
			if _, err := rowStmt.ExecContext(ctx, name, t.Name, i, string(cells)); err != nil {
				return "", fmt.Errorf("sqlite: failed to insert row %d of %s: %w", i, t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("sqlite: failed to commit import of %s: %w", name, err)
	}
	return importID, nil
}

// Load reads back the raw tables of a scenario and decodes them
func (s *Store) Load(ctx context.Context, name string) (*domain.ScenarioData, error) {
	raw, err := s.Tables(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := tables.Decode(name, raw)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return data, nil
}

// Tables returns the stored raw tables of a scenario
func (s *Store) Tables(ctx context.Context, name string) ([]domain.RawTable, error) {
	var importID string
	err := s.conn.QueryRowContext(ctx, `SELECT import_id FROM scenarios WHERE name = ?`, name).Scan(&importID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: %w: %s", domain.ErrScenarioNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to look up scenario %s: %w", name, err)
	}

	trows, err := s.conn.QueryContext(ctx,
		`SELECT table_name, columns FROM scenario_tables WHERE scenario = ? ORDER BY table_name`, name)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query tables of %s: %w", name, err)
	}
	var raw []domain.RawTable
	pos := make(map[string]int)
	for trows.Next() {
		var t domain.RawTable
		var columns string
		if err := trows.Scan(&t.Name, &columns); err != nil {
			trows.Close()
			return nil, fmt.Errorf("sqlite: failed to scan table: %w", err)
		}
		if err := json.Unmarshal([]byte(columns), &t.Columns); err != nil {
			trows.Close()
			return nil, fmt.Errorf("sqlite: failed to decode columns of %s: %w", t.Name, err)
		}
		pos[t.Name] = len(raw)
		raw = append(raw, t)
	}
	trows.Close()
	if err := trows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to read tables of %s: %w", name, err)
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT table_name, cells FROM scenario_rows WHERE scenario = ? ORDER BY table_name, row_num`, name)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query rows of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, cells string
		if err := rows.Scan(&tableName, &cells); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan row: %w", err)
		}
		i, ok := pos[tableName]
		if !ok {
			continue
		}
		var record []string
		if err := json.Unmarshal([]byte(cells), &record); err != nil {
			return nil, fmt.Errorf("sqlite: failed to decode row of %s: %w", tableName, err)
		}
		raw[i].Rows = append(raw[i].Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to read rows of %s: %w", name, err)
	}

	return raw, nil
}
