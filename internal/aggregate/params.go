package aggregate

// VehicleType holds the cost model of one bus type
type VehicleType struct {
	SeatingCapacity        float64 `yaml:"seating_capacity" json:"seating_capacity"`
	OperationalCostPerHour float64 `yaml:"operational_cost_per_hour" json:"operational_cost_per_hour"`
	FuelGallonsPerMile     float64 `yaml:"fuel_gallons_per_mile" json:"fuel_gallons_per_mile"`
}

// Params are the aggregation constants that are not part of a scenario's inputs
type Params struct {
	Routes               []string               `yaml:"routes" json:"routes"`
	BaselineHeadwayHours float64                `yaml:"baseline_headway_hours" json:"baseline_headway_hours"`
	BaseFare             float64                `yaml:"base_fare" json:"base_fare"`
	FuelPricePerGallon   float64                `yaml:"fuel_price_per_gallon" json:"fuel_price_per_gallon"`
	DefaultVehicleType   string                 `yaml:"default_vehicle_type" json:"default_vehicle_type"`
	VehicleTypes         map[string]VehicleType `yaml:"vehicle_types" json:"vehicle_types"`
	PM25GramsPerMile     map[string]float64     `yaml:"pm25_grams_per_mile" json:"pm25_grams_per_mile"`
}

// DefaultParams returns the Bay Area bus network defaults
func DefaultParams() Params {
	return Params{
		Routes: []string{
			"1340", "1341", "1342", "1343", "1344", "1345",
			"1346", "1347", "1348", "1349", "1350", "1351",
		},
		BaselineHeadwayHours: 0.25,
		BaseFare:             0,
		FuelPricePerGallon:   3.0,
		DefaultVehicleType:   "BUS-DEFAULT",
		VehicleTypes: map[string]VehicleType{
			"BUS-DEFAULT":  {SeatingCapacity: 50, OperationalCostPerHour: 89.88, FuelGallonsPerMile: 0.25},
			"BUS-SMALL-HD": {SeatingCapacity: 25, OperationalCostPerHour: 90.39, FuelGallonsPerMile: 0.16},
			"BUS-STD-HD":   {SeatingCapacity: 50, OperationalCostPerHour: 90.39, FuelGallonsPerMile: 0.22},
			"BUS-STD-ART":  {SeatingCapacity: 80, OperationalCostPerHour: 97.15, FuelGallonsPerMile: 0.33},
		},
		PM25GramsPerMile: map[string]float64{
			EmissionOnDemand: 0.0068,
			EmissionCar:      0.0068,
			EmissionBus:      0.0241,
		},
	}
}

// vehicleType resolves a type name, falling back to the default type
func (p Params) vehicleType(name string) VehicleType {
	if vt, ok := p.VehicleTypes[name]; ok {
		return vt
	}
	return p.VehicleTypes[p.DefaultVehicleType]
}
