package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SCENARIO_SOURCE", "")
	t.Setenv("RESULT_CACHE_SIZE", "")

	cfg := FromEnv()
	if cfg.Port != "8080" || cfg.Source != SourceCSV || cfg.ResultCacheSize != 16 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	t.Setenv("GO_ENV", "")
	if FromEnv().IsProduction() {
		t.Error("default environment should be development")
	}

	t.Setenv("GO_ENV", "production")
	if !FromEnv().IsProduction() {
		t.Error("GO_ENV=production should select production")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SCENARIO_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESULT_CACHE_SIZE", "nope")

	cfg := FromEnv()
	if cfg.ResultCacheSize != 16 {
		t.Errorf("bad RESULT_CACHE_SIZE should fall back to 16, got %d", cfg.ResultCacheSize)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("postgres source without DATABASE_URL should not validate")
	}

	cfg.Source = "ftp"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown source should not validate")
	}
}

func TestLoadParamsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	yml := `
fuel_price_per_gallon: 4.5
base_fare: 1.25
vehicle_types:
  BUS-ELECTRIC:
    seating_capacity: 40
    operational_cost_per_hour: 70
    fuel_gallons_per_mile: 0
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams failed: %v", err)
	}
	if p.FuelPricePerGallon != 4.5 || p.BaseFare != 1.25 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if len(p.Routes) != 12 {
		t.Errorf("routes should keep their default, got %v", p.Routes)
	}
	if _, ok := p.VehicleTypes["BUS-ELECTRIC"]; !ok {
		t.Error("new vehicle type missing")
	}
	if _, ok := p.VehicleTypes["BUS-DEFAULT"]; !ok {
		t.Error("default vehicle types should survive the overlay")
	}
}

func TestLoadParamsErrors(t *testing.T) {
	if _, err := LoadParams(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("default_vehicle_type: BUS-NOPE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadParams(path); err == nil {
		t.Error("unknown default vehicle type should fail")
	}
}

func TestLoadParamsEmptyPath(t *testing.T) {
	p, err := LoadParams("")
	if err != nil || p.DefaultVehicleType != "BUS-DEFAULT" {
		t.Errorf("LoadParams(\"\") = %+v, %v", p, err)
	}
}
