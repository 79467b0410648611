package domain

import (
	"context"
	"errors"
)

// ErrScenarioNotFound is returned when a named scenario does not exist
var ErrScenarioNotFound = errors.New("scenario not found")

// RawTable is one parsed delimited input file: a header row and string cells
type RawTable struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ScenarioSource defines the interface for loading scenario input tables
// This follows the Dependency Inversion Principle - domain defines the interface
type ScenarioSource interface {
	// List returns the names of all scenarios the source can load
	List(ctx context.Context) ([]string, error)

	// Load reads and decodes every input table of one scenario.
	// Missing tables are empty; malformed rows fail the whole scenario.
	Load(ctx context.Context, name string) (*ScenarioData, error)
}

// ScenarioStore is a ScenarioSource that can also persist raw scenario tables
type ScenarioStore interface {
	ScenarioSource

	// Import replaces the stored tables of a scenario and returns the new import id
	Import(ctx context.Context, name string, tables []RawTable) (string, error)

	// Health checks store connectivity
	Health(ctx context.Context) error
}
