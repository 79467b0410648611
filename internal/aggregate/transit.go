package aggregate

import (
	"github.com/smartcity/prizedash/internal/domain"
)

type costItem struct {
	route     int
	component int
	amount    float64
}

// transitCostBenefit sets bus operating and fuel costs against the fares
// collected on each route.
func (a *Aggregator) transitCostBenefit(ix index, data *domain.ScenarioData) domain.SeriesTable {
	items := make([]costItem, 0, 2*len(data.PathTraversals)+len(data.Legs))

	for _, pt := range data.PathTraversals {
		if pt.Mode != VehicleBus {
			continue
		}
		r := ix.route(pt.RouteID)
		if r < 0 {
			continue
		}
		vt := ix.vehicleType(a.params, pt)
		if hours := (pt.ArrivalTime - pt.DepartureTime) / 3600; hours > 0 {
			items = append(items, costItem{r, 0, hours * vt.OperationalCostPerHour})
		}
		items = append(items, costItem{r, 1, pt.Miles * vt.FuelGallonsPerMile * a.params.FuelPricePerGallon})
	}

	for _, leg := range data.Legs {
		if leg.Mode != VehicleBus {
			continue
		}
		r := ix.route(leg.RouteID)
		if r < 0 {
			continue
		}
		items = append(items, costItem{r, 2, a.fare(ix, data.Fares, leg)})
	}

	values := Group(items, Grouping[costItem]{
		Axis:   ix.routes,
		Series: CostComponents,
		Key:    func(c costItem) (int, int, bool) { return c.route, c.component, true },
		Value:  func(c costItem) float64 { return c.amount },
		Reduce: Sum,
	})
	return seriesTable("Bus costs and fare revenue by route", "Route", "Amount [$]", ix.routes, CostComponents, palette(Category10, len(CostComponents)), values)
}

// fare returns the first matching fare for the leg's route and rider age,
// falling back to the base fare.
func (a *Aggregator) fare(ix index, fares []domain.Fare, leg domain.Leg) float64 {
	age, ok := ix.age(leg.PersonID)
	if !ok {
		return a.params.BaseFare
	}
	for _, f := range fares {
		if f.RouteID == leg.RouteID && f.Contains(age) {
			return f.Amount
		}
	}
	return a.params.BaseFare
}

// incentive returns the largest incentive the trip's rider qualifies for
func incentive(ix index, incentives []domain.Incentive, t domain.Trip) float64 {
	age, ok := ix.age(t.PersonID)
	if !ok {
		return 0
	}
	income, ok := ix.income(t.PersonID)
	if !ok {
		return 0
	}
	best := 0.0
	for _, inc := range incentives {
		if inc.Mode == t.RealizedMode && inc.Applies(age, income) && inc.Amount > best {
			best = inc.Amount
		}
	}
	return best
}

func (a *Aggregator) incentivesByMode(ix index, data *domain.ScenarioData) domain.SeriesTable {
	values := Group(data.Trips, Grouping[domain.Trip]{
		Axis:   Hours,
		Series: Modes,
		Key: func(t domain.Trip) (int, int, bool) {
			h, ok := hourOf(t.StartTime)
			return h, lookup(modePos, t.RealizedMode), ok
		},
		Value:  func(t domain.Trip) float64 { return incentive(ix, data.Incentives, t) },
		Reduce: Sum,
	})
	return seriesTable("Incentives distributed by mode", "Hour", "Incentives [$]", Hours, Modes, modeColors, values)
}
