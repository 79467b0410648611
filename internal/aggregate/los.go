package aggregate

import (
	"github.com/smartcity/prizedash/internal/domain"
)

func (a *Aggregator) travelExpenditure(trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Hours,
		Series: Modes,
		Key: func(t domain.Trip) (int, int, bool) {
			h, ok := hourOf(t.StartTime)
			return h, lookup(modePos, t.RealizedMode), ok
		},
		Value:  func(t domain.Trip) float64 { return t.Cost },
		Reduce: Mean,
	})
	return seriesTable("Average trip expenditure", "Hour", "Cost [$]", Hours, Modes, modeColors, values)
}

// crowding averages the hours buses spent over seating capacity across the
// buses that served each route in each day period.
func (a *Aggregator) crowding(ix index, traversals []domain.PathTraversal) domain.SeriesTable {
	cell := func(pt domain.PathTraversal) (int, int, bool) {
		if pt.Mode != VehicleBus {
			return 0, 0, false
		}
		r := ix.route(pt.RouteID)
		p := DayPeriods.Index(float64(wrapHour(pt.Hour)))
		return r, p, r >= 0 && p >= 0
	}

	crowdedHours := Group(traversals, Grouping[domain.PathTraversal]{
		Axis:   ix.routes,
		Series: DayPeriods.Labels,
		Key:    cell,
		Value: func(pt domain.PathTraversal) float64 {
			if pt.Occupancy <= ix.capacity(a.params, pt) || pt.ArrivalTime <= pt.DepartureTime {
				return 0
			}
			return (pt.ArrivalTime - pt.DepartureTime) / 3600
		},
		Reduce: Sum,
	})

	buses := make(map[[2]int]map[string]struct{})
	for _, pt := range traversals {
		r, p, ok := cell(pt)
		if !ok {
			continue
		}
		k := [2]int{r, p}
		if buses[k] == nil {
			buses[k] = make(map[string]struct{})
		}
		buses[k][pt.VehicleID] = struct{}{}
	}

	for r := range crowdedHours {
		for p := range crowdedHours[r] {
			if n := len(buses[[2]int{r, p}]); n > 0 {
				crowdedHours[r][p] /= float64(n)
			}
		}
	}

	return seriesTable("Average bus crowding per route", "Route", "Crowded hours per bus [h]", ix.routes, DayPeriods.Labels, palette(Category10, DayPeriods.Len()), crowdedHours)
}
