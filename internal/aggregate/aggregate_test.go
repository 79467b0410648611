package aggregate

import (
	"math"
	"reflect"
	"testing"

	"github.com/smartcity/prizedash/internal/domain"
)

func fixture() *domain.ScenarioData {
	return &domain.ScenarioData{
		Name: "fixture",
		Persons: []domain.Person{
			{PersonID: "p1", HouseholdID: "h1", Age: 35},
			{PersonID: "p2", HouseholdID: "h2", Age: 12},
			{PersonID: "p3", HouseholdID: "h1", Age: 70},
		},
		Households: []domain.Household{
			{HouseholdID: "h1", Income: 60000},
			{HouseholdID: "h2", Income: 5000},
		},
		Trips: []domain.Trip{
			{PersonID: "p1", PlannedMode: ModeCar, RealizedMode: ModeCar, StartTime: 8 * 3600, Duration: 1800, Distance: 0.3, Cost: 2},
			{PersonID: "p2", PlannedMode: ModeWalkTransit, RealizedMode: ModeWalkTransit, StartTime: 8*3600 + 600, Duration: 3600, Distance: 1.2, Cost: 1},
			{PersonID: "p3", PlannedMode: ModeCar, RealizedMode: ModeOnDemand, StartTime: 17 * 3600, Duration: 1200, Distance: 41, Cost: 20},
			{PersonID: "ghost", PlannedMode: ModeWalk, RealizedMode: ModeWalk, StartTime: 26 * 3600, Duration: 0, Distance: 0.1},
		},
		Legs: []domain.Leg{
			{PersonID: "p2", Mode: VehicleBus, RouteID: "1340"},
			{PersonID: "p1", Mode: VehicleBus, RouteID: "1341"},
			{PersonID: "p2", Mode: ModeWalk},
		},
		PathTraversals: []domain.PathTraversal{
			{VehicleID: "bus-1", Mode: VehicleBus, RouteID: "1340", Hour: 8, DepartureTime: 8 * 3600, ArrivalTime: 9 * 3600, Miles: 10, Occupancy: 60, SeatingCapacity: 50},
			{VehicleID: "bus-2", Mode: VehicleBus, RouteID: "1340", Hour: 8, DepartureTime: 8 * 3600, ArrivalTime: 8*3600 + 1800, Miles: 4, Occupancy: 10, SeatingCapacity: 50},
			{VehicleID: "bus-1", Mode: VehicleBus, RouteID: "1340", Hour: 9, Miles: 3, Occupancy: 0, SeatingCapacity: 50},
			{VehicleID: "rh-1", Mode: VehicleOnDemand, Hour: 17, Miles: 2, Occupancy: 0},
			{VehicleID: "rh-1", Mode: VehicleOnDemand, Hour: 17, Miles: 5, Occupancy: 1},
		},
		Fares: []domain.Fare{
			{RouteID: "1340", MinAge: 0, MaxAge: 18, Amount: 0.5},
			{RouteID: "1340", MinAge: 0, MaxAge: 120, Amount: 2},
		},
		Incentives: []domain.Incentive{
			{Mode: ModeWalkTransit, MinAge: 0, MaxAge: 18, MinIncome: 0, MaxIncome: 10000, Amount: 1.5},
			{Mode: ModeWalkTransit, MinAge: 0, MaxAge: 65, MinIncome: 0, MaxIncome: 50000, Amount: 3},
			{Mode: ModeCar, MinAge: 0, MaxAge: 120, MinIncome: 0, MaxIncome: 1e9, Amount: 100},
		},
		FleetMix: []domain.FleetMix{
			{RouteID: "1341", VehicleType: "BUS-SMALL-HD"},
			{RouteID: "1340", VehicleType: "BUS-STD-ART"},
		},
		FrequencyAdjustments: []domain.FrequencyAdjustment{
			{RouteID: "1340", StartTime: 16 * 3600, EndTime: 18 * 3600, HeadwaySecs: 600},
			{RouteID: "1340", StartTime: 7 * 3600, EndTime: 9 * 3600, HeadwaySecs: 300},
		},
		Scores: []domain.SubmissionScore{
			{Component: "Submission Score", WeightedScore: 0.92},
			{Component: "congestion:  total vehicle miles traveled", WeightedScore: 0.1},
		},
	}
}

func TestModeChoiceByDistance(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())
	table := rs.ModeChoiceByDistance

	if got := table.Cell("[0, 0.5)", ModeCar); got != 1 {
		t.Errorf("[0, 0.5) car = %v, want 1", got)
	}
	if got := table.Cell("[1, 1.5)", ModeWalkTransit); got != 1 {
		t.Errorf("[1, 1.5) walk_transit = %v, want 1", got)
	}
	if got := table.Cell("[40, inf)", ModeOnDemand); got != 1 {
		t.Errorf("[40, inf) OnDemand_ride = %v, want 1", got)
	}
	if table.Total() != 4 {
		t.Errorf("binned %v trips, want 4", table.Total())
	}
}

func TestPieAnglesCoverCircle(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())

	for _, pie := range []domain.PieChart{rs.ModePlannedPie, rs.ModeRealizedPie} {
		if len(pie.Wedges) != len(Modes) {
			t.Fatalf("%s has %d wedges, want %d", pie.Title, len(pie.Wedges), len(Modes))
		}
		sweep, pct := 0.0, 0.0
		for i, w := range pie.Wedges {
			sweep += w.EndAngle - w.StartAngle
			pct += w.Percentage
			if i > 0 && w.StartAngle != pie.Wedges[i-1].EndAngle {
				t.Errorf("%s wedge %s does not start where the previous ended", pie.Title, w.Mode)
			}
		}
		if math.Abs(sweep-2*math.Pi) > 1e-9 {
			t.Errorf("%s sweeps %v, want 2π", pie.Title, sweep)
		}
		if math.Abs(pct-100) > 1e-9 {
			t.Errorf("%s percentages sum to %v", pie.Title, pct)
		}
	}

	planned := rs.ModePlannedPie.Wedges[1]
	if planned.Mode != ModeCar || planned.Count != 2 || planned.Label != "car 50.0%" {
		t.Errorf("unexpected car wedge: %+v", planned)
	}
}

func TestEmptyScenarioKeepsSkeleton(t *testing.T) {
	rs := New(DefaultParams()).Build("empty", &domain.ScenarioData{})

	age := rs.ModeChoiceByAge
	cells := 0
	for _, row := range age.Values {
		for _, v := range row {
			if v != 0 {
				t.Errorf("non-zero cell in an empty scenario: %v", v)
			}
			cells++
		}
	}
	if cells != 35 {
		t.Errorf("mode by age has %d cells, want 35", cells)
	}

	for _, w := range rs.ModeRealizedPie.Wedges {
		if w.StartAngle != 0 || w.EndAngle != 0 || w.Count != 0 {
			t.Errorf("empty pie wedge should be all zero: %+v", w)
		}
	}

	if len(rs.FaresInput.Rows) != 0 {
		t.Errorf("empty fares produced %d rows", len(rs.FaresInput.Rows))
	}
	if rs.FaresInput.Rows == nil {
		t.Error("fares rows should be an empty list, not nil")
	}
	if len(rs.Crowding.Axis) != 12 || len(rs.TransitCostBenefit.Values) != 12 {
		t.Errorf("route axis should hold the 12 configured routes, got %d", len(rs.Crowding.Axis))
	}
	if len(rs.NormalizedScores.Rows) != len(ScoreCategories) {
		t.Errorf("scores has %d rows, want %d", len(rs.NormalizedScores.Rows), len(ScoreCategories))
	}
}

func TestBuildNilData(t *testing.T) {
	rs := New(DefaultParams()).Build("nothing", nil)
	if rs.Scenario != "nothing" || len(rs.ModeChoiceByTime.Values) != 24 {
		t.Errorf("unexpected result for nil data: %+v", rs.ModeChoiceByTime)
	}
}

func TestModeChoiceByAgeAndIncome(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())

	if got := rs.ModeChoiceByAge.Cell(ModeWalkTransit, "[0, 18)"); got != 1 {
		t.Errorf("walk_transit [0, 18) = %v, want 1", got)
	}
	if got := rs.ModeChoiceByAge.Cell(ModeOnDemand, "[60, inf)"); got != 1 {
		t.Errorf("OnDemand_ride [60, inf) = %v, want 1", got)
	}
	// the unknown person is dropped
	if total := rs.ModeChoiceByAge.Total(); total != 3 {
		t.Errorf("age table counts %v trips, want 3", total)
	}
	if got := rs.ModeChoiceByIncome.Cell(ModeCar, "[$50k, $75k)"); got != 1 {
		t.Errorf("car [$50k, $75k) = %v, want 1", got)
	}
}

func TestModeChoiceByTimeWrapsHours(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())
	table := rs.ModeChoiceByTime

	if got := table.Cell("8", ModeCar); got != 1 {
		t.Errorf("8h car = %v, want 1", got)
	}
	if got := table.Cell("2", ModeWalk); got != 1 {
		t.Errorf("a trip starting at 26h should count at 2h, got %v", got)
	}
}

func TestCongestionTables(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())

	if got := rs.TravelTimeByMode.Value(ModeWalkTransit); got != 60 {
		t.Errorf("walk_transit travel time = %v, want 60", got)
	}
	if got := rs.MilesTravelledPerMode.Value(ModeOnDemand); got != 41 {
		t.Errorf("OnDemand_ride miles = %v, want 41", got)
	}

	vmt := rs.BusVMTByRidership
	if got := vmt.Cell("8", RidershipCrowd); got != 10 {
		t.Errorf("crowded bus miles at 8h = %v, want 10", got)
	}
	if got := vmt.Cell("8", RidershipLow); got != 4 {
		t.Errorf("low ridership miles at 8h = %v, want 4", got)
	}
	if got := vmt.Cell("9", RidershipEmpty); got != 3 {
		t.Errorf("empty miles at 9h = %v, want 3", got)
	}
	if vmt.Total() != 17 {
		t.Errorf("bus miles total = %v, want 17", vmt.Total())
	}

	if got := rs.OnDemandVMTByPhase.Cell("17", "fetch"); got != 2 {
		t.Errorf("fetch miles = %v, want 2", got)
	}
	if got := rs.OnDemandVMTByPhase.Cell("17", "fare"); got != 5 {
		t.Errorf("fare miles = %v, want 5", got)
	}

	// 0.3 miles in half an hour
	if got := rs.TravelSpeed.Cell("[8, 10)", ModeCar); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("car speed = %v, want 0.6", got)
	}
}

func TestCrowdingAndCostBenefit(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())

	// one crowded hour shared by the two buses of the AM peak
	if got := rs.Crowding.Cell("1340", "AM Peak"); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("crowding 1340 AM Peak = %v, want 0.5", got)
	}

	cb := rs.TransitCostBenefit
	art := DefaultParams().VehicleTypes["BUS-STD-ART"]
	wantOps := 1.5 * art.OperationalCostPerHour
	if got := cb.Cell("1340", CostOperational); math.Abs(got-wantOps) > 1e-6 {
		t.Errorf("1340 operational = %v, want %v", got, wantOps)
	}
	wantFuel := 17 * art.FuelGallonsPerMile * 3.0
	if got := cb.Cell("1340", CostFuel); math.Abs(got-wantFuel) > 1e-6 {
		t.Errorf("1340 fuel = %v, want %v", got, wantFuel)
	}
	// the 12 year old pays the first matching fare
	if got := cb.Cell("1340", CostFare); got != 0.5 {
		t.Errorf("1340 fare = %v, want 0.5", got)
	}
	// no fares configured on 1341, so the base fare applies
	if got := cb.Cell("1341", CostFare); got != 0 {
		t.Errorf("1341 fare = %v, want 0", got)
	}
}

func TestMissingSeatingCapacityUsesVehicleType(t *testing.T) {
	data := &domain.ScenarioData{
		PathTraversals: []domain.PathTraversal{
			{VehicleID: "bus-1", Mode: VehicleBus, RouteID: "1340", Hour: 8, DepartureTime: 8 * 3600, ArrivalTime: 9 * 3600, Miles: 10, Occupancy: 10},
			{VehicleID: "bus-2", Mode: VehicleBus, RouteID: "1340", Hour: 8, DepartureTime: 8 * 3600, ArrivalTime: 9 * 3600, Miles: 6, Occupancy: 60},
		},
	}
	rs := New(DefaultParams()).Build("no-capacity", data)

	// BUS-DEFAULT seats 50
	if got := rs.BusVMTByRidership.Cell("8", RidershipLow); got != 10 {
		t.Errorf("low ridership miles = %v, want 10", got)
	}
	if got := rs.BusVMTByRidership.Cell("8", RidershipCrowd); got != 6 {
		t.Errorf("crowded miles = %v, want 6", got)
	}
	if got := rs.Crowding.Cell("1340", "AM Peak"); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("crowding = %v, want 0.5", got)
	}

	// without any known capacity every occupied bus counts as crowded in both tables
	params := DefaultParams()
	params.VehicleTypes["BUS-DEFAULT"] = VehicleType{}
	rs = New(params).Build("no-capacity", data)
	if got := rs.BusVMTByRidership.Cell("8", RidershipCrowd); got != 16 {
		t.Errorf("crowded miles without capacity = %v, want 16", got)
	}
	if got := rs.Crowding.Cell("1340", "AM Peak"); math.Abs(got-1) > 1e-9 {
		t.Errorf("crowding without capacity = %v, want 1", got)
	}
}

func TestIncentivesTakeLargestMatch(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())

	if got := rs.IncentivesByMode.Cell("8", ModeWalkTransit); got != 3 {
		t.Errorf("walk_transit incentive = %v, want 3", got)
	}
	if got := rs.IncentivesByMode.Cell("8", ModeCar); got != 100 {
		t.Errorf("car incentive = %v, want 100", got)
	}

	in := rs.IncentivesInput.Rows
	if len(in) != 2 {
		t.Fatalf("incentives input keeps %d rows, want 2 (car excluded)", len(in))
	}
	if in[0].Amount != 1.5 {
		t.Errorf("incentives input not sorted by age: %+v", in)
	}
}

func TestEmissionsChargeTransitAtBusRate(t *testing.T) {
	p := DefaultParams()
	rs := New(p).Build("fixture", fixture())

	want := 1.2 * p.PM25GramsPerMile[EmissionBus]
	if got := rs.EmissionsPerMode.Value(EmissionBus); math.Abs(got-want) > 1e-12 {
		t.Errorf("bus emissions = %v, want %v", got, want)
	}
	if len(rs.EmissionsPerMode.Rows) != 3 {
		t.Errorf("emissions has %d rows, want 3", len(rs.EmissionsPerMode.Rows))
	}
}

func TestRouteSchedule(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())
	sched := rs.RouteSchedule

	var adjusted, flat *domain.ScheduleLine
	for i := range sched.Lines {
		switch sched.Lines[i].RouteID {
		case "1340":
			adjusted = &sched.Lines[i]
		case "1345":
			flat = &sched.Lines[i]
		}
	}
	if adjusted == nil || flat == nil {
		t.Fatal("missing schedule lines")
	}

	wantXs := []float64{7, 9, 16, 18}
	if !reflect.DeepEqual(adjusted.Xs, wantXs) {
		t.Errorf("1340 xs = %v, want %v", adjusted.Xs, wantXs)
	}
	if adjusted.Ys[0] != 300.0/3600 {
		t.Errorf("1340 first headway = %v", adjusted.Ys[0])
	}
	if !reflect.DeepEqual(flat.Xs, []float64{0, 24}) || flat.Ys[0] != 0.25 {
		t.Errorf("unadjusted route should be flat at the baseline: %+v", flat)
	}
	if len(sched.Starts) != 2 || len(sched.Ends) != 2 {
		t.Errorf("markers = %d starts, %d ends; want 2 each", len(sched.Starts), len(sched.Ends))
	}
}

func TestNormalizedScores(t *testing.T) {
	rs := New(DefaultParams()).Build("fixture", fixture())
	scores := rs.NormalizedScores

	if scores.Rows[0].Label != "Submission Score" || scores.Rows[0].Value != 0.92 {
		t.Errorf("first displayed row should be the submission score: %+v", scores.Rows[0])
	}
	if got := scores.Value("Congestion: total vehicle miles traveled"); got != 0.1 {
		t.Errorf("congestion VMT score = %v, want 0.1", got)
	}
	if got := scores.Value("Sustainability: Total PM 2.5 Emissions"); got != 0 {
		t.Errorf("missing component should score 0, got %v", got)
	}
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	data := fixture()
	before := fixture()

	New(DefaultParams()).Build("fixture", data)

	if !reflect.DeepEqual(data, before) {
		t.Error("Build modified its input")
	}
}

func TestResultSetsAreIndependent(t *testing.T) {
	agg := New(DefaultParams())
	a := agg.Build("a", fixture())
	snapshot := a.ModeChoiceByTime.Total()
	color := a.ModeChoiceByTime.Colors[0]

	b := agg.Build("b", &domain.ScenarioData{})
	b.ModeChoiceByTime.Axis[0] = "changed"
	b.ModeChoiceByTime.Values[8][1] = 99
	b.ModeChoiceByTime.Colors[0] = "#000000"

	if a.ModeChoiceByTime.Axis[0] != "0" || a.ModeChoiceByTime.Total() != snapshot {
		t.Error("building a second result set changed the first")
	}
	if Hours[0] != "0" {
		t.Error("result tables share the hour axis")
	}
	if a.ModeChoiceByTime.Colors[0] != color || a.TravelSpeed.Colors[0] != color {
		t.Errorf("result tables share mode colors: got %s and %s, want %s",
			a.ModeChoiceByTime.Colors[0], a.TravelSpeed.Colors[0], color)
	}
	if c := agg.Build("c", &domain.ScenarioData{}); c.ModeChoiceByTime.Colors[0] != color {
		t.Errorf("later build got color %s, want %s", c.ModeChoiceByTime.Colors[0], color)
	}
}
