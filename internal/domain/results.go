package domain

// Result table names. Each one is bound by the UI to exactly one chart.
const (
	TableNormalizedScores           = "normalized_scores"
	TableFleetMixInput              = "fleetmix_input"
	TableRouteScheduleInput         = "routesched_input"
	TableFaresInput                 = "fares_input"
	TableModeIncentivesInput        = "modeinc_input"
	TableModePlannedPie             = "mode_planned_pie_chart"
	TableModeRealizedPie            = "mode_realized_pie_chart"
	TableModeChoiceByTime           = "mode_choice_by_time"
	TableModeChoiceByIncome         = "mode_choice_by_income_group"
	TableModeChoiceByAge            = "mode_choice_by_age_group"
	TableModeChoiceByDistance       = "mode_choice_by_distance"
	TableTravelTimeByMode           = "congestion_travel_time_by_mode"
	TableTravelTimePerPassengerTrip = "congestion_travel_time_per_passenger_trip"
	TableMilesTravelledPerMode      = "congestion_miles_travelled_per_mode"
	TableBusVMTByRidership          = "congestion_bus_vmt_by_ridership"
	TableOnDemandVMTByPhase         = "congestion_on_demand_vmt_by_phases"
	TableTravelSpeed                = "congestion_travel_speed"
	TableTravelExpenditure          = "los_travel_expenditure"
	TableCrowding                   = "los_crowding"
	TableTransitCostBenefit         = "transit_cb"
	TableIncentivesByMode           = "transit_inc_by_mode"
	TableEmissionsPerMode           = "sustainability_25pm_per_mode"
	TableInputSummary               = "input_summary"
)

// ResultTables lists every result table in catalog order
var ResultTables = []string{
	TableNormalizedScores,
	TableFleetMixInput,
	TableRouteScheduleInput,
	TableFaresInput,
	TableModeIncentivesInput,
	TableModePlannedPie,
	TableModeRealizedPie,
	TableModeChoiceByTime,
	TableModeChoiceByIncome,
	TableModeChoiceByAge,
	TableModeChoiceByDistance,
	TableTravelTimeByMode,
	TableTravelTimePerPassengerTrip,
	TableMilesTravelledPerMode,
	TableBusVMTByRidership,
	TableOnDemandVMTByPhase,
	TableTravelSpeed,
	TableTravelExpenditure,
	TableCrowding,
	TableTransitCostBenefit,
	TableIncentivesByMode,
	TableEmissionsPerMode,
	TableInputSummary,
}

// CategoryValue is one labelled value of a flat category table
type CategoryValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// CategoryTable is a flat mapping from category label to value, in display order
type CategoryTable struct {
	Title      string          `json:"title"`
	ValueLabel string          `json:"value_label"`
	Rows       []CategoryValue `json:"rows"`
}

// Value returns the value of the row with the given label, or 0
func (t CategoryTable) Value(label string) float64 {
	for _, r := range t.Rows {
		if r.Label == label {
			return r.Value
		}
	}
	return 0
}

// SeriesTable is a multi-series table keyed by a categorical axis.
// Values is indexed [axis][series] and always holds the full skeleton.
type SeriesTable struct {
	Title      string      `json:"title"`
	AxisLabel  string      `json:"axis_label"`
	ValueLabel string      `json:"value_label"`
	Axis       []string    `json:"axis"`
	Series     []string    `json:"series"`
	Colors     []string    `json:"colors"`
	Values     [][]float64 `json:"values"`
}

// Cell returns the value at the given axis key and series name, or 0
func (t SeriesTable) Cell(axis, series string) float64 {
	ai, si := -1, -1
	for i, a := range t.Axis {
		if a == axis {
			ai = i
			break
		}
	}
	for i, s := range t.Series {
		if s == series {
			si = i
			break
		}
	}
	if ai < 0 || si < 0 {
		return 0
	}
	return t.Values[ai][si]
}

// Total sums every cell
func (t SeriesTable) Total() float64 {
	total := 0.0
	for _, row := range t.Values {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// PieWedge is one mode wedge of a mode-choice pie
type PieWedge struct {
	Mode       string  `json:"mode"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Color      string  `json:"color"`
	Label      string  `json:"label"`
}

// PieChart holds wedges in fixed mode order
type PieChart struct {
	Title  string     `json:"title"`
	Wedges []PieWedge `json:"wedges"`
}

// ScheduleLine is a route's headway polyline over the hour of day
type ScheduleLine struct {
	RouteID string    `json:"route_id"`
	Color   string    `json:"color"`
	Xs      []float64 `json:"xs"`
	Ys      []float64 `json:"ys"`
}

// ScheduleMarker marks the start or end of a frequency adjustment window
type ScheduleMarker struct {
	RouteID string  `json:"route_id"`
	Color   string  `json:"color"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// RouteSchedule is the frequency adjustment chart input
type RouteSchedule struct {
	Title  string           `json:"title"`
	Lines  []ScheduleLine   `json:"lines"`
	Starts []ScheduleMarker `json:"starts"`
	Ends   []ScheduleMarker `json:"ends"`
}

// FleetMixTable is the fleet mix scatter input
type FleetMixTable struct {
	Title string     `json:"title"`
	Rows  []FleetMix `json:"rows"`
}

// FaresTable is the fares heatmap input
type FaresTable struct {
	Title string `json:"title"`
	Rows  []Fare `json:"rows"`
}

// IncentivesTable is the incentives heatmap input
type IncentivesTable struct {
	Title string      `json:"title"`
	Rows  []Incentive `json:"rows"`
}

// ResultSet is the complete, immutable catalog of chart inputs for one scenario
type ResultSet struct {
	Scenario string `json:"scenario"`

	NormalizedScores CategoryTable   `json:"normalized_scores"`
	FleetMixInput    FleetMixTable   `json:"fleetmix_input"`
	RouteSchedule    RouteSchedule   `json:"routesched_input"`
	FaresInput       FaresTable      `json:"fares_input"`
	IncentivesInput  IncentivesTable `json:"modeinc_input"`

	ModePlannedPie       PieChart    `json:"mode_planned_pie_chart"`
	ModeRealizedPie      PieChart    `json:"mode_realized_pie_chart"`
	ModeChoiceByTime     SeriesTable `json:"mode_choice_by_time"`
	ModeChoiceByIncome   SeriesTable `json:"mode_choice_by_income_group"`
	ModeChoiceByAge      SeriesTable `json:"mode_choice_by_age_group"`
	ModeChoiceByDistance SeriesTable `json:"mode_choice_by_distance"`

	TravelTimeByMode           CategoryTable `json:"congestion_travel_time_by_mode"`
	TravelTimePerPassengerTrip SeriesTable   `json:"congestion_travel_time_per_passenger_trip"`
	MilesTravelledPerMode      CategoryTable `json:"congestion_miles_travelled_per_mode"`
	BusVMTByRidership          SeriesTable   `json:"congestion_bus_vmt_by_ridership"`
	OnDemandVMTByPhase         SeriesTable   `json:"congestion_on_demand_vmt_by_phases"`
	TravelSpeed                SeriesTable   `json:"congestion_travel_speed"`

	TravelExpenditure SeriesTable `json:"los_travel_expenditure"`
	Crowding          SeriesTable `json:"los_crowding"`

	TransitCostBenefit SeriesTable `json:"transit_cb"`
	IncentivesByMode   SeriesTable `json:"transit_inc_by_mode"`

	EmissionsPerMode CategoryTable `json:"sustainability_25pm_per_mode"`

	InputSummary CategoryTable `json:"input_summary"`
}

// Table returns the named result table
func (r *ResultSet) Table(name string) (any, bool) {
	switch name {
	case TableNormalizedScores:
		return r.NormalizedScores, true
	case TableFleetMixInput:
		return r.FleetMixInput, true
	case TableRouteScheduleInput:
		return r.RouteSchedule, true
	case TableFaresInput:
		return r.FaresInput, true
	case TableModeIncentivesInput:
		return r.IncentivesInput, true
	case TableModePlannedPie:
		return r.ModePlannedPie, true
	case TableModeRealizedPie:
		return r.ModeRealizedPie, true
	case TableModeChoiceByTime:
		return r.ModeChoiceByTime, true
	case TableModeChoiceByIncome:
		return r.ModeChoiceByIncome, true
	case TableModeChoiceByAge:
		return r.ModeChoiceByAge, true
	case TableModeChoiceByDistance:
		return r.ModeChoiceByDistance, true
	case TableTravelTimeByMode:
		return r.TravelTimeByMode, true
	case TableTravelTimePerPassengerTrip:
		return r.TravelTimePerPassengerTrip, true
	case TableMilesTravelledPerMode:
		return r.MilesTravelledPerMode, true
	case TableBusVMTByRidership:
		return r.BusVMTByRidership, true
	case TableOnDemandVMTByPhase:
		return r.OnDemandVMTByPhase, true
	case TableTravelSpeed:
		return r.TravelSpeed, true
	case TableTravelExpenditure:
		return r.TravelExpenditure, true
	case TableCrowding:
		return r.Crowding, true
	case TableTransitCostBenefit:
		return r.TransitCostBenefit, true
	case TableIncentivesByMode:
		return r.IncentivesByMode, true
	case TableEmissionsPerMode:
		return r.EmissionsPerMode, true
	case TableInputSummary:
		return r.InputSummary, true
	}
	return nil, false
}
