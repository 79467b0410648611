package service

import (
	"context"
	"errors"
	"sync"

	"github.com/smartcity/prizedash/internal/domain"
)

// DashboardService answers the comparison dashboard's queries
type DashboardService struct {
	registry *Registry
	store    domain.ScenarioStore
}

// NewDashboardService creates a new dashboard service. store may be nil when
// the scenario source has no health check.
func NewDashboardService(registry *Registry, store domain.ScenarioStore) *DashboardService {
	return &DashboardService{
		registry: registry,
		store:    store,
	}
}

// Registry returns the scenario registry behind the service
func (s *DashboardService) Registry() *Registry {
	return s.registry
}

// Scenarios is the scenario list with the initial comparison pair
type Scenarios struct {
	Names    []string `json:"names"`
	DefaultA string   `json:"default_a"`
	DefaultB string   `json:"default_b"`
}

// GetScenarios lists the registered scenarios
func (s *DashboardService) GetScenarios() Scenarios {
	a, b := s.registry.Defaults()
	return Scenarios{Names: s.registry.Names(), DefaultA: a, DefaultB: b}
}

// GetResults returns the full result set of a scenario
func (s *DashboardService) GetResults(name string) (*domain.ResultSet, error) {
	return s.registry.Results(name)
}

// ErrTableNotFound is returned for names outside the result catalog
var ErrTableNotFound = errors.New("result table not found")

// GetTable returns one result table of a scenario
func (s *DashboardService) GetTable(name, table string) (any, error) {
	rs, err := s.registry.Results(name)
	if err != nil {
		return nil, err
	}
	t, ok := rs.Table(table)
	if !ok {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// Layout is what one tab shows for a checklist state
type Layout struct {
	Tab     Tab      `json:"tab"`
	Options []Option `json:"options"`
	Visible []string `json:"visible"`
}

// GetLayout resolves the checklist options and visible charts of a tab
func (s *DashboardService) GetLayout(tab Tab, checked []string) Layout {
	return Layout{Tab: tab, Options: ChecklistOptions(tab), Visible: VisibleCharts(tab, checked)}
}

// Side is one scenario's visible tables in a comparison
type Side struct {
	Scenario string         `json:"scenario"`
	Tables   map[string]any `json:"tables"`
}

// Comparison shows the same charts for two scenarios side by side
type Comparison struct {
	Visible []string `json:"visible"`
	A       Side     `json:"a"`
	B       Side     `json:"b"`
}

// Compare builds both sides of a comparison concurrently
func (s *DashboardService) Compare(a, b string, tab Tab, checked []string) (Comparison, error) {
	visible := VisibleCharts(tab, checked)

	var (
		sides [2]Side
		errs  [2]error
		wg    sync.WaitGroup
	)
	for i, name := range []string{a, b} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sides[i], errs[i] = s.side(name, visible)
		}(i, name)
	}
	wg.Wait()

	if err := errors.Join(errs[0], errs[1]); err != nil {
		return Comparison{}, err
	}
	return Comparison{Visible: visible, A: sides[0], B: sides[1]}, nil
}

func (s *DashboardService) side(name string, visible []string) (Side, error) {
	rs, err := s.registry.Results(name)
	if err != nil {
		return Side{}, err
	}
	tables := make(map[string]any, len(visible))
	for _, t := range visible {
		tables[t], _ = rs.Table(t)
	}
	return Side{Scenario: name, Tables: tables}, nil
}

// Health checks the scenario store, if any
func (s *DashboardService) Health(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Health(ctx)
}
