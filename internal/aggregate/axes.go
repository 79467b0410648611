package aggregate

import (
	"math"
	"strconv"
)

// Trip modes
const (
	ModeOnDemand     = "OnDemand_ride"
	ModeCar          = "car"
	ModeDriveTransit = "drive_transit"
	ModeWalk         = "walk"
	ModeWalkTransit  = "walk_transit"
)

// Vehicle modes of path traversals and legs
const (
	VehicleBus      = "bus"
	VehicleOnDemand = "ride_hail"
)

// Emission buckets
const (
	EmissionOnDemand = "OnDemand_ride"
	EmissionCar      = "car"
	EmissionBus      = "bus"
)

// Modes is the fixed trip mode axis
var Modes = []string{ModeOnDemand, ModeCar, ModeDriveTransit, ModeWalk, ModeWalkTransit}

// IncentiveModes are the modes that can receive incentives
var IncentiveModes = []string{ModeOnDemand, ModeDriveTransit, ModeWalkTransit}

// Hours is the hour-of-day axis
var Hours = func() []string {
	h := make([]string, 24)
	for i := range h {
		h[i] = strconv.Itoa(i)
	}
	return h
}()

var (
	IncomeBins   = NewBins([]float64{0, 10000, 25000, 50000, 75000, 100000}, dollarLabel)
	AgeBins      = NewBins([]float64{0, 18, 25, 30, 40, 50, 60}, plainLabel)
	DistanceBins = NewBins([]float64{0, .5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 7.5, 10, 40}, plainLabel)
)

// SpeedBins are two-hour start intervals from 6:00 to 24:00
var SpeedBins = func() Bins {
	b := NewBins([]float64{6, 8, 10, 12, 14, 16, 18, 20, 22}, plainLabel)
	b.Labels[len(b.Labels)-1] = "[22, 24)"
	return b
}()

// Ridership buckets of bus vehicle miles
const (
	RidershipEmpty  = "empty"
	RidershipLow    = "low ridership"
	RidershipMedium = "medium ridership"
	RidershipFull   = "full"
	RidershipCrowd  = "crowded"
)

var RidershipBuckets = []string{RidershipEmpty, RidershipLow, RidershipMedium, RidershipFull, RidershipCrowd}

// Driving phases of on-demand vehicles
var DrivingPhases = []string{"fetch", "fare"}

// DayPeriods are the service periods used for crowding
var DayPeriods = Bins{
	Edges:  []float64{0, 6, 10, 15, 19},
	Labels: []string{"Early Morning", "AM Peak", "Midday", "PM Peak", "Late Evening"},
}

// Transit cost components
const (
	CostOperational = "OperationalCosts"
	CostFuel        = "FuelCost"
	CostFare        = "Fare"
)

var CostComponents = []string{CostOperational, CostFuel, CostFare}

var EmissionBuckets = []string{EmissionOnDemand, EmissionCar, EmissionBus}

// ScoreCategories is the fixed submission score breakdown
var ScoreCategories = []string{
	"Accessibility: Number of secondary locations accessible within 15 minutes",
	"Accessibility: Number of work locations accessible within 15 minutes",
	"Congestion: average vehicle delay per passenger trip",
	"Congestion: total vehicle miles traveled",
	"Level of service: average bus crowding experienced",
	"Level of service: average trip expenditure - secondary",
	"Level of service: average trip expenditure - work",
	"Level of service: costs and benefits",
	"Sustainability: Total PM 2.5 Emissions",
	"Submission Score",
}

// Category10 is the categorical palette used for series colors
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Category20 colors routes
var Category20 = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

func palette(colors []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}

// hourOf returns the hour of day of a time in seconds after midnight.
// Times past midnight wrap; negative or non-finite times have no hour.
func hourOf(seconds float64) (int, bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return -1, false
	}
	return int(seconds/3600) % 24, true
}

// ridershipBucket places a traversal in exactly one ridership bucket
func ridershipBucket(occupancy, capacity float64) int {
	if occupancy <= 0 || math.IsNaN(occupancy) {
		return 0
	}
	ratio := math.Inf(1)
	if capacity > 0 {
		ratio = occupancy / capacity
	}
	switch {
	case ratio < 0.5:
		return 1
	case ratio < 1:
		return 2
	case ratio == 1:
		return 3
	default:
		return 4
	}
}

// emissionBucket maps a trip mode onto an emission bucket
func emissionBucket(mode string) int {
	switch mode {
	case ModeOnDemand:
		return 0
	case ModeCar:
		return 1
	case ModeDriveTransit, ModeWalkTransit:
		return 2
	}
	return -1
}
