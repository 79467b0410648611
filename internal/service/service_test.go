package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/smartcity/prizedash/internal/aggregate"
	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/memory"
)

// flakySource fails to load the scenarios listed in broken
type flakySource struct {
	*memory.Source
	broken map[string]bool
}

func (f flakySource) List(ctx context.Context) ([]string, error) {
	names, _ := f.Source.List(ctx)
	for b := range f.broken {
		names = append(names, b)
	}
	return names, nil
}

func (f flakySource) Load(ctx context.Context, name string) (*domain.ScenarioData, error) {
	if f.broken[name] {
		return nil, fmt.Errorf("malformed row in %s", name)
	}
	return f.Source.Load(ctx, name)
}

func small(name string, seed int64) *domain.ScenarioData {
	return memory.Demo(name, memory.DemoOptions{Seed: seed, Persons: 40})
}

func newTestRegistry(t *testing.T, scenarios ...*domain.ScenarioData) *Registry {
	t.Helper()
	r, err := NewRegistry(context.Background(), memory.NewSource(scenarios...), aggregate.New(aggregate.DefaultParams()), 4)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return r
}

func TestRegistrySkipsBrokenScenarios(t *testing.T) {
	src := flakySource{
		Source: memory.NewSource(small("bau", 1)),
		broken: map[string]bool{"corrupt": true},
	}

	r, err := NewRegistry(context.Background(), src, aggregate.New(aggregate.DefaultParams()), 4)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if !reflect.DeepEqual(r.Names(), []string{"bau"}) {
		t.Errorf("Names = %v, want [bau]", r.Names())
	}
	if r.Has("corrupt") {
		t.Error("broken scenario should not be registered")
	}
}

func TestRegistryWithoutScenarios(t *testing.T) {
	src := flakySource{Source: memory.NewSource(), broken: map[string]bool{"corrupt": true}}
	if _, err := NewRegistry(context.Background(), src, aggregate.New(aggregate.DefaultParams()), 4); err == nil {
		t.Error("expected an error when nothing loads")
	}
}

func TestRegistryDefaults(t *testing.T) {
	tests := []struct {
		names []string
		a, b  string
	}{
		{[]string{"alpha", "example_run", "warm-start"}, "warm-start", "example_run"},
		{[]string{"alpha", "beta", "gamma"}, "alpha", "beta"},
		{[]string{"alpha", "warm-start"}, "warm-start", "alpha"},
		{[]string{"example_run", "zeta"}, "example_run", "zeta"},
		{[]string{"solo"}, "solo", "solo"},
	}

	for _, tt := range tests {
		var data []*domain.ScenarioData
		for _, n := range tt.names {
			data = append(data, &domain.ScenarioData{Name: n})
		}
		r := newTestRegistry(t, data...)
		a, b := r.Defaults()
		if a != tt.a || b != tt.b {
			t.Errorf("Defaults(%v) = %s, %s; want %s, %s", tt.names, a, b, tt.a, tt.b)
		}
	}
}

func TestRegistryResults(t *testing.T) {
	r := newTestRegistry(t, small("bau", 1), small("run", 2))

	first, err := r.Results("bau")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	again, err := r.Results("bau")
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("second lookup should come from the cache")
	}

	if _, err := r.Results("nope"); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}
	if _, err := r.Data("nope"); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestReadingOneScenarioLeavesAnotherUnchanged(t *testing.T) {
	r := newTestRegistry(t, small("bau", 1), small("run", 2))

	a, err := r.Results("bau")
	if err != nil {
		t.Fatal(err)
	}
	before := a.ModeChoiceByTime.Total()
	pie := append([]domain.PieWedge(nil), a.ModeRealizedPie.Wedges...)

	if _, err := r.Results("run"); err != nil {
		t.Fatal(err)
	}

	if a.ModeChoiceByTime.Total() != before || !reflect.DeepEqual(a.ModeRealizedPie.Wedges, pie) {
		t.Error("loading another scenario changed a result set already handed out")
	}
}

func TestVisibleCharts(t *testing.T) {
	got := VisibleCharts(TabScores, nil)
	if !reflect.DeepEqual(got, []string{domain.TableNormalizedScores}) {
		t.Errorf("scores tab = %v", got)
	}

	got = VisibleCharts(TabInputs, []string{"fleet", "freq", "bogus"})
	want := []string{domain.TableFleetMixInput, domain.TableRouteScheduleInput}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("inputs tab = %v, want %v", got, want)
	}

	got = VisibleCharts(TabOutputs, []string{"los", "sustainability"})
	want = []string{domain.TableTravelExpenditure, domain.TableCrowding, domain.TableEmissionsPerMode}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outputs tab = %v, want %v", got, want)
	}

	if got := VisibleCharts(TabOutputs, nil); len(got) != 0 {
		t.Errorf("nothing checked should show nothing, got %v", got)
	}
	if got := VisibleCharts(TabOutputs, []string{"mode"}); len(got) != 6 {
		t.Errorf("mode group shows %d charts, want 6", len(got))
	}
}

func TestChecklistOptions(t *testing.T) {
	if n := len(ChecklistOptions(TabInputs)); n != 4 {
		t.Errorf("inputs has %d options, want 4", n)
	}
	if n := len(ChecklistOptions(TabOutputs)); n != 5 {
		t.Errorf("outputs has %d options, want 5", n)
	}
	if n := len(ChecklistOptions(TabScores)); n != 0 {
		t.Errorf("scores has %d options, want 0", n)
	}
	if _, err := ParseTab("settings"); err == nil {
		t.Error("ParseTab should reject unknown tabs")
	}
}

func TestCompare(t *testing.T) {
	svc := NewDashboardService(newTestRegistry(t, small("bau", 1), small("run", 2)), nil)

	cmp, err := svc.Compare("bau", "run", TabOutputs, []string{"transit"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(cmp.Visible) != 2 || len(cmp.A.Tables) != 2 || len(cmp.B.Tables) != 2 {
		t.Errorf("unexpected comparison: %+v", cmp.Visible)
	}
	if cmp.A.Scenario != "bau" || cmp.B.Scenario != "run" {
		t.Errorf("sides = %s, %s", cmp.A.Scenario, cmp.B.Scenario)
	}
	if _, ok := cmp.A.Tables[domain.TableTransitCostBenefit].(domain.SeriesTable); !ok {
		t.Errorf("transit_cb should be a series table, got %T", cmp.A.Tables[domain.TableTransitCostBenefit])
	}

	if _, err := svc.Compare("bau", "missing", TabScores, nil); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestGetTable(t *testing.T) {
	svc := NewDashboardService(newTestRegistry(t, small("bau", 1)), nil)

	if _, err := svc.GetTable("bau", domain.TableCrowding); err != nil {
		t.Errorf("GetTable failed: %v", err)
	}
	if _, err := svc.GetTable("bau", "nope"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
	if err := svc.Health(context.Background()); err != nil {
		t.Errorf("Health without a store = %v", err)
	}
}
