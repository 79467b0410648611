package csvdir

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/tables"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListSkipsDotEntriesAndFiles(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"warm-start", "example_run", ".git"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(root, "README.md"), "notes")

	names, err := NewSource(root).List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"example_run", "warm-start"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}

func TestLoadReadsOriginalLayout(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "bau")
	writeFile(t, filepath.Join(dir, tables.File(tables.Trips)),
		"\ufeffPID,realizedTripMode,plannedTripMode,Start_time,Duration,Distance\n1,car,car,28800,600,2.5\n2,walk,walk,30000,300,0.4\n")
	writeFile(t, filepath.Join(dir, tables.File(tables.Fares)),
		"agencyId,routeId,age,amount\n217,1340,[1:49],1.5\n")
	writeFile(t, filepath.Join(dir, tables.File(tables.Scores)),
		"Component Name,Weighted Score\nSubmission Score,0.87\n")

	data, err := NewSource(root).Load(context.Background(), "bau")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data.Trips) != 2 || data.Trips[0].PersonID != "1" {
		t.Errorf("unexpected trips: %+v", data.Trips)
	}
	if len(data.Fares) != 1 || data.Fares[0].MaxAge != 50 {
		t.Errorf("unexpected fares: %+v", data.Fares)
	}
	if len(data.Scores) != 1 || data.Scores[0].WeightedScore != 0.87 {
		t.Errorf("unexpected scores: %+v", data.Scores)
	}
	if len(data.Legs) != 0 {
		t.Errorf("missing legs file should be an empty table, got %d rows", len(data.Legs))
	}
}

func TestLoadMalformedScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken", tables.File(tables.Households)), "household_id,income\nh1,rich\n")

	_, err := NewSource(root).Load(context.Background(), "broken")
	if !errors.Is(err, tables.ErrMalformedRow) {
		t.Errorf("expected ErrMalformedRow, got %v", err)
	}
}

func TestLoadMissingScenario(t *testing.T) {
	_, err := NewSource(t.TempDir()).Load(context.Background(), "nope")
	if !errors.Is(err, os.ErrNotExist) || !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, path, "")

	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("expected an empty table, got %+v", table)
	}
}
