package render

import (
	"bytes"
	"testing"

	"github.com/smartcity/prizedash/internal/aggregate"
	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/internal/repository/memory"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func renderAll(t *testing.T, rs *domain.ResultSet) {
	t.Helper()
	for _, name := range domain.ResultTables {
		table, ok := rs.Table(name)
		if !ok {
			t.Fatalf("result set has no table %s", name)
		}
		var buf bytes.Buffer
		if err := Table(table, &buf); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("%s: output is not a PNG", name)
		}
	}
}

func TestRenderEveryTable(t *testing.T) {
	data := memory.Demo("example_run", memory.DemoOptions{Seed: 3, Persons: 40, Adjusted: true})
	renderAll(t, aggregate.New(aggregate.DefaultParams()).Build(data.Name, data))
}

func TestRenderEmptyScenario(t *testing.T) {
	renderAll(t, aggregate.New(aggregate.DefaultParams()).Build("empty", &domain.ScenarioData{}))
}

func TestRenderUnsupportedType(t *testing.T) {
	if err := Table(42, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unsupported type")
	}
}
