// Package memory holds scenarios in process, for demo mode and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/tables"
)

// Source implements domain.ScenarioStore without any backing storage
type Source struct {
	mu        sync.RWMutex
	scenarios map[string]*domain.ScenarioData
}

// NewSource creates a source holding the given scenarios
func NewSource(scenarios ...*domain.ScenarioData) *Source {
	s := &Source{scenarios: make(map[string]*domain.ScenarioData, len(scenarios))}
	for _, d := range scenarios {
		s.scenarios[d.Name] = d
	}
	return s
}

// NewDemoSource creates a source with a baseline and an adjusted synthetic scenario
func NewDemoSource() *Source {
	return NewSource(
		Demo("warm-start", DemoOptions{Seed: 1}),
		Demo("example_run", DemoOptions{Seed: 2, Adjusted: true}),
	)
}

// List returns the scenario names in sorted order
func (s *Source) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.scenarios))
	for n := range s.scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns a stored scenario
func (s *Source) Load(ctx context.Context, name string) (*domain.ScenarioData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("memory: %w: %s", domain.ErrScenarioNotFound, name)
	}
	return d, nil
}

// Import decodes raw tables and stores them under name
func (s *Source) Import(ctx context.Context, name string, raw []domain.RawTable) (string, error) {
	data, err := tables.Decode(name, raw)
	if err != nil {
		return "", fmt.Errorf("memory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios[name] = data
	return uuid.NewString(), nil
}

// Health always returns nil in memory mode
func (s *Source) Health(ctx context.Context) error {
	return nil
}
