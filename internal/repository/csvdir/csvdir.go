// Package csvdir loads scenarios from a directory tree of simulation output,
// one sub-directory per scenario.
package csvdir

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/tables"
)

// Source implements domain.ScenarioSource over a data directory
type Source struct {
	root string
}

// NewSource creates a source rooted at dir
func NewSource(dir string) *Source {
	return &Source{root: dir}
}

// List returns the scenario directory names in sorted order, skipping dot entries
func (s *Source) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("csvdir: failed to read data directory %s: %w", s.root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads every input table of a scenario
func (s *Source) Load(ctx context.Context, name string) (*domain.ScenarioData, error) {
	raw, err := ReadDir(ctx, filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	data, err := tables.Decode(name, raw)
	if err != nil {
		return nil, fmt.Errorf("csvdir: %w", err)
	}
	return data, nil
}

// ReadDir reads the input tables present in one scenario directory.
// Missing files are skipped.
func ReadDir(ctx context.Context, dir string) ([]domain.RawTable, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("csvdir: %s: %w: %w", dir, domain.ErrScenarioNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("csvdir: failed to open scenario %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("csvdir: %s is not a directory", dir)
	}

	var raw []domain.RawTable
	for _, name := range tables.Names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := ReadFile(filepath.Join(dir, tables.File(name)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		t.Name = name
		raw = append(raw, t)
	}
	return raw, nil
}

// ReadFile reads one header-first CSV file
func ReadFile(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return domain.RawTable{}, nil
	}
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("csvdir: failed to read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := domain.RawTable{Columns: header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("csvdir: failed to read %s: %w", path, err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}
