package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/bluele/gcache"

	"github.com/smartcity/prizedash/internal/aggregate"
	"github.com/smartcity/prizedash/internal/domain"
)

// Default scenario names shown first when present
const (
	DefaultScenarioA = "warm-start"
	DefaultScenarioB = "example_run"
)

// Registry holds the loaded scenarios of one session and their result sets.
// Scenario data is read only after construction, so readers need no locks.
type Registry struct {
	names     []string
	scenarios map[string]*domain.ScenarioData
	agg       *aggregate.Aggregator
	results   gcache.Cache
}

// NewRegistry loads every scenario the source lists. Scenarios that fail to
// load are logged and skipped; a registry without scenarios is an error.
func NewRegistry(ctx context.Context, source ScenarioSource, agg *aggregate.Aggregator, cacheSize int) (*Registry, error) {
	names, err := source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list scenarios: %w", err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		scenarios = make(map[string]*domain.ScenarioData, len(names))
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			data, err := source.Load(ctx, name)
			if err != nil {
				log.Printf("Skipping scenario %s: %v", name, err)
				return
			}
			mu.Lock()
			scenarios[name] = data
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	if len(scenarios) == 0 {
		return nil, errors.New("service: no scenarios could be loaded")
	}

	loaded := make([]string, 0, len(scenarios))
	for name := range scenarios {
		loaded = append(loaded, name)
	}
	sort.Strings(loaded)
	log.Printf("Loaded %d scenarios: %v", len(loaded), loaded)

	if cacheSize <= 0 {
		cacheSize = len(loaded)
	}

	r := &Registry{names: loaded, scenarios: scenarios, agg: agg}
	r.results = gcache.New(cacheSize).
		LRU().
		LoaderFunc(func(key interface{}) (interface{}, error) {
			name := key.(string)
			return r.agg.Build(name, r.scenarios[name]), nil
		}).
		Build()

	return r, nil
}

// Names returns the registered scenario names in sorted order
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Has reports whether a scenario is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.scenarios[name]
	return ok
}

// Defaults returns the initial pair of scenarios to compare: warm-start and
// example_run when present, else the first names that differ. With a single
// scenario both sides show it.
func (r *Registry) Defaults() (string, string) {
	a := r.names[0]
	if r.Has(DefaultScenarioA) {
		a = DefaultScenarioA
	}
	if r.Has(DefaultScenarioB) && DefaultScenarioB != a {
		return a, DefaultScenarioB
	}
	for _, name := range r.names {
		if name != a {
			return a, name
		}
	}
	return a, a
}

// Data returns the loaded input tables of a scenario
func (r *Registry) Data(name string) (*domain.ScenarioData, error) {
	d, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("service: %w: %s", ErrScenarioNotFound, name)
	}
	return d, nil
}

// Results returns the result set of a scenario, building it on first use
func (r *Registry) Results(name string) (*domain.ResultSet, error) {
	if !r.Has(name) {
		return nil, fmt.Errorf("service: %w: %s", ErrScenarioNotFound, name)
	}
	v, err := r.results.Get(name)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build results for %s: %w", name, err)
	}
	return v.(*domain.ResultSet), nil
}
