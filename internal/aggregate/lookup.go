package aggregate

import (
	"sort"

	"github.com/smartcity/prizedash/internal/domain"
)

// index joins trips to people, households and routes for one scenario
type index struct {
	ages     map[string]float64
	incomes  map[string]float64
	fleet    map[string]string
	routes   []string
	routePos map[string]int
}

func buildIndex(p Params, data *domain.ScenarioData) index {
	ix := index{
		ages:    make(map[string]float64, len(data.Persons)),
		incomes: make(map[string]float64, len(data.Persons)),
		fleet:   make(map[string]string, len(data.FleetMix)),
	}

	households := make(map[string]float64, len(data.Households))
	for _, h := range data.Households {
		households[h.HouseholdID] = h.Income
	}
	for _, person := range data.Persons {
		ix.ages[person.PersonID] = person.Age
		if inc, ok := households[person.HouseholdID]; ok {
			ix.incomes[person.PersonID] = inc
		}
	}
	for _, f := range data.FleetMix {
		if _, ok := ix.fleet[f.RouteID]; !ok {
			ix.fleet[f.RouteID] = f.VehicleType
		}
	}

	seen := make(map[string]bool)
	add := func(r string) {
		if r != "" && !seen[r] {
			seen[r] = true
			ix.routes = append(ix.routes, r)
		}
	}
	for _, r := range p.Routes {
		add(r)
	}
	for _, f := range data.FleetMix {
		add(f.RouteID)
	}
	for _, f := range data.FrequencyAdjustments {
		add(f.RouteID)
	}
	for _, f := range data.Fares {
		add(f.RouteID)
	}
	for _, pt := range data.PathTraversals {
		if pt.Mode == VehicleBus {
			add(pt.RouteID)
		}
	}
	sort.Strings(ix.routes)
	ix.routePos = positions(ix.routes)

	return ix
}

func (ix index) age(personID string) (float64, bool) {
	a, ok := ix.ages[personID]
	return a, ok
}

func (ix index) income(personID string) (float64, bool) {
	inc, ok := ix.incomes[personID]
	return inc, ok
}

func (ix index) route(id string) int {
	return lookup(ix.routePos, id)
}

// vehicleType resolves the bus type of a traversal: its own type, then the
// route's fleet mix entry, then the configured default.
func (ix index) vehicleType(p Params, pt domain.PathTraversal) VehicleType {
	if pt.VehicleType != "" {
		if vt, ok := p.VehicleTypes[pt.VehicleType]; ok {
			return vt
		}
	}
	return p.vehicleType(ix.fleet[pt.RouteID])
}

// capacity is the seating capacity of a traversal, taken from its vehicle
// type when the traversal does not carry one. Zero means unknown.
func (ix index) capacity(p Params, pt domain.PathTraversal) float64 {
	if pt.SeatingCapacity > 0 {
		return pt.SeatingCapacity
	}
	return ix.vehicleType(p, pt).SeatingCapacity
}
