package domain

// Trip is one completed person trip from the simulation output.
// Times are seconds after midnight, distance is in miles and cost in dollars.
type Trip struct {
	PersonID     string  `json:"person_id"`
	TripID       string  `json:"trip_id"`
	PlannedMode  string  `json:"planned_mode"`
	RealizedMode string  `json:"realized_mode"`
	StartTime    float64 `json:"start_time"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Cost         float64 `json:"cost"`
}

// Leg is one mode-homogeneous segment of a trip
type Leg struct {
	PersonID  string  `json:"person_id"`
	TripID    string  `json:"trip_id"`
	Mode      string  `json:"mode"`
	VehicleID string  `json:"vehicle_id"`
	RouteID   string  `json:"route_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Distance  float64 `json:"distance"`
}

// PathTraversal is one vehicle movement between two stops or links
type PathTraversal struct {
	VehicleID       string  `json:"vehicle_id"`
	VehicleType     string  `json:"vehicle_type"`
	Mode            string  `json:"mode"`
	RouteID         string  `json:"route_id"`
	DepartureTime   float64 `json:"departure_time"`
	ArrivalTime     float64 `json:"arrival_time"`
	Hour            int     `json:"hour"`
	Miles           float64 `json:"miles"`
	Occupancy       float64 `json:"occupancy"`
	SeatingCapacity float64 `json:"seating_capacity"`
}

// Person holds the demographic attributes joined to trips
type Person struct {
	PersonID    string  `json:"person_id"`
	HouseholdID string  `json:"household_id"`
	Age         float64 `json:"age"`
}

// Household holds the household income joined to persons
type Household struct {
	HouseholdID string  `json:"household_id"`
	Income      float64 `json:"income"`
}

// Activity is one activity episode of a person's plan
type Activity struct {
	PersonID  string  `json:"person_id"`
	Type      string  `json:"type"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// FrequencyAdjustment overrides the headway of a route over a time window
type FrequencyAdjustment struct {
	RouteID     string  `json:"route_id"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	HeadwaySecs float64 `json:"headway_secs"`
}

// Fare is the fare charged on a route for riders aged [MinAge, MaxAge)
type Fare struct {
	RouteID string  `json:"route_id"`
	MinAge  float64 `json:"min_age"`
	MaxAge  float64 `json:"max_age"`
	Amount  float64 `json:"amount"`
}

// Contains reports whether age falls in the fare's age bracket
func (f Fare) Contains(age float64) bool {
	return age >= f.MinAge && age < f.MaxAge
}

// Incentive is a per-trip subsidy for a mode, restricted to an age and income bracket
type Incentive struct {
	Mode      string  `json:"mode"`
	MinAge    float64 `json:"min_age"`
	MaxAge    float64 `json:"max_age"`
	MinIncome float64 `json:"min_income"`
	MaxIncome float64 `json:"max_income"`
	Amount    float64 `json:"amount"`
}

// Applies reports whether a rider of the given age and income is eligible
func (i Incentive) Applies(age, income float64) bool {
	return age >= i.MinAge && age < i.MaxAge && income >= i.MinIncome && income < i.MaxIncome
}

// FleetMix assigns a bus vehicle type to a route
type FleetMix struct {
	RouteID     string `json:"route_id"`
	VehicleType string `json:"vehicle_type"`
}

// SubmissionScore is one precomputed weighted sub-score
type SubmissionScore struct {
	Component     string  `json:"component"`
	WeightedScore float64 `json:"weighted_score"`
}

// ScenarioData is the full set of parsed input tables of one scenario.
// It is never modified after loading.
type ScenarioData struct {
	Name string `json:"name"`

	Trips          []Trip          `json:"trips"`
	Legs           []Leg           `json:"legs"`
	PathTraversals []PathTraversal `json:"path_traversals"`
	Persons        []Person        `json:"persons"`
	Households     []Household     `json:"households"`
	Activities     []Activity      `json:"activities"`

	FrequencyAdjustments []FrequencyAdjustment `json:"frequency_adjustments"`
	Fares                []Fare                `json:"fares"`
	Incentives           []Incentive           `json:"incentives"`
	FleetMix             []FleetMix            `json:"fleet_mix"`
	Scores               []SubmissionScore     `json:"scores"`
}
