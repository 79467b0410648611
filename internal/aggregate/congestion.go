package aggregate

import (
	"github.com/smartcity/prizedash/internal/domain"
)

func (a *Aggregator) travelTimeByMode(trips []domain.Trip) domain.CategoryTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Modes,
		Series: []string{"minutes"},
		Key: func(t domain.Trip) (int, int, bool) {
			return lookup(modePos, t.RealizedMode), 0, true
		},
		Value:  func(t domain.Trip) float64 { return t.Duration / 60 },
		Reduce: Mean,
	})
	return categoryTable("Average travel time per trip by mode", "Travel time [min]", Modes, modeColors, values)
}

func (a *Aggregator) travelTimePerPassengerTrip(trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Hours,
		Series: Modes,
		Key: func(t domain.Trip) (int, int, bool) {
			h, ok := hourOf(t.StartTime)
			return h, lookup(modePos, t.RealizedMode), ok
		},
		Value:  func(t domain.Trip) float64 { return t.Duration / 60 },
		Reduce: Mean,
	})
	return seriesTable("Average travel time per passenger trip", "Hour", "Travel time [min]", Hours, Modes, modeColors, values)
}

func (a *Aggregator) milesTravelledPerMode(trips []domain.Trip) domain.CategoryTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Modes,
		Series: []string{"miles"},
		Key: func(t domain.Trip) (int, int, bool) {
			return lookup(modePos, t.RealizedMode), 0, true
		},
		Value:  func(t domain.Trip) float64 { return t.Distance },
		Reduce: Sum,
	})
	return categoryTable("Person miles travelled by mode", "Distance [miles]", Modes, modeColors, values)
}

func (a *Aggregator) busVMTByRidership(ix index, traversals []domain.PathTraversal) domain.SeriesTable {
	values := Group(traversals, Grouping[domain.PathTraversal]{
		Axis:   Hours,
		Series: RidershipBuckets,
		Key: func(pt domain.PathTraversal) (int, int, bool) {
			if pt.Mode != VehicleBus {
				return 0, 0, false
			}
			return wrapHour(pt.Hour), ridershipBucket(pt.Occupancy, ix.capacity(a.params, pt)), true
		},
		Value:  func(pt domain.PathTraversal) float64 { return pt.Miles },
		Reduce: Sum,
	})
	return seriesTable("Bus vehicle miles by ridership", "Hour", "Vehicle miles [miles]", Hours, RidershipBuckets, palette(Category10, len(RidershipBuckets)), values)
}

// onDemandVMTByPhase splits on-demand vehicle miles into driving to a
// pickup (no passenger) and driving with a fare on board.
func (a *Aggregator) onDemandVMTByPhase(traversals []domain.PathTraversal) domain.SeriesTable {
	values := Group(traversals, Grouping[domain.PathTraversal]{
		Axis:   Hours,
		Series: DrivingPhases,
		Key: func(pt domain.PathTraversal) (int, int, bool) {
			if pt.Mode != VehicleOnDemand {
				return 0, 0, false
			}
			phase := 1
			if pt.Occupancy == 0 {
				phase = 0
			}
			return wrapHour(pt.Hour), phase, true
		},
		Value:  func(pt domain.PathTraversal) float64 { return pt.Miles },
		Reduce: Sum,
	})
	return seriesTable("On-demand vehicle miles by driving phase", "Hour", "Vehicle miles [miles]", Hours, DrivingPhases, palette(Category10, len(DrivingPhases)), values)
}

func (a *Aggregator) travelSpeed(trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   SpeedBins.Labels,
		Series: Modes,
		Key: func(t domain.Trip) (int, int, bool) {
			h, ok := hourOf(t.StartTime)
			if !ok || t.Duration <= 0 {
				return 0, 0, false
			}
			hour := float64(h) + fractionOfHour(t.StartTime)
			return SpeedBins.Index(hour), lookup(modePos, t.RealizedMode), true
		},
		Value:  func(t domain.Trip) float64 { return t.Distance / (t.Duration / 3600) },
		Reduce: Mean,
	})
	return seriesTable("Average travel speed by trip start time", "Start time [h]", "Speed [mph]", SpeedBins.Labels, Modes, modeColors, values)
}

func fractionOfHour(seconds float64) float64 {
	h := seconds / 3600
	return h - float64(int(h))
}

// wrapHour folds an hour column value onto 0..23; negative hours drop out
func wrapHour(h int) int {
	if h < 0 {
		return -1
	}
	return h % 24
}
