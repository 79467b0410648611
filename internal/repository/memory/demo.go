package memory

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/smartcity/prizedash/internal/aggregate"
	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/pkg/utils"
)

// DemoOptions controls the synthetic scenario generator
type DemoOptions struct {
	Seed    int64
	Persons int
	// Adjusted adds a submission: fares, incentives, fleet mix and frequency changes
	Adjusted bool
}

// Demo generates a deterministic synthetic scenario
func Demo(name string, opts DemoOptions) *domain.ScenarioData {
	if opts.Persons <= 0 {
		opts.Persons = 400
	}
	g := &demo{
		rng:    rand.New(rand.NewSource(opts.Seed)),
		params: aggregate.DefaultParams(),
		opts:   opts,
		data:   &domain.ScenarioData{Name: name},
	}

	g.population()
	if opts.Adjusted {
		g.submission()
	}
	g.travel()
	g.buses()
	g.scores()

	return g.data
}

type demo struct {
	rng    *rand.Rand
	params aggregate.Params
	opts   DemoOptions
	data   *domain.ScenarioData
}

var incomeTiers = []float64{8000, 18000, 40000, 62000, 88000, 140000}

func (g *demo) population() {
	for i := 0; i < g.opts.Persons; i++ {
		hid := fmt.Sprintf("h%d", i/2)
		if i%2 == 0 {
			tier := incomeTiers[g.rng.Intn(len(incomeTiers))]
			g.data.Households = append(g.data.Households, domain.Household{
				HouseholdID: hid,
				Income:      math.Round(tier * (0.8 + 0.4*g.rng.Float64())),
			})
		}
		g.data.Persons = append(g.data.Persons, domain.Person{
			PersonID:    fmt.Sprintf("p%d", i),
			HouseholdID: hid,
			Age:         float64(5 + g.rng.Intn(80)),
		})
	}
}

// submission fills the competition input files of an adjusted run
func (g *demo) submission() {
	routes := g.params.Routes
	for i, r := range routes {
		if i%3 == 0 {
			g.data.FleetMix = append(g.data.FleetMix, domain.FleetMix{RouteID: r, VehicleType: "BUS-SMALL-HD"})
		}
		if i%4 == 1 {
			g.data.FleetMix = append(g.data.FleetMix, domain.FleetMix{RouteID: r, VehicleType: "BUS-STD-ART"})
			g.data.FrequencyAdjustments = append(g.data.FrequencyAdjustments,
				domain.FrequencyAdjustment{RouteID: r, StartTime: 6 * 3600, EndTime: 10 * 3600, HeadwaySecs: 420},
				domain.FrequencyAdjustment{RouteID: r, StartTime: 15 * 3600, EndTime: 19 * 3600, HeadwaySecs: 480},
			)
		}
		if i < 6 {
			g.data.Fares = append(g.data.Fares,
				domain.Fare{RouteID: r, MinAge: 1, MaxAge: 18, Amount: 0.5},
				domain.Fare{RouteID: r, MinAge: 18, MaxAge: 65, Amount: 1.75},
				domain.Fare{RouteID: r, MinAge: 65, MaxAge: 121, Amount: 0.75},
			)
		}
	}

	g.data.Incentives = []domain.Incentive{
		{Mode: aggregate.ModeWalkTransit, MinAge: 0, MaxAge: 121, MinIncome: 0, MaxIncome: 25000, Amount: 2},
		{Mode: aggregate.ModeDriveTransit, MinAge: 0, MaxAge: 121, MinIncome: 0, MaxIncome: 50000, Amount: 1.5},
		{Mode: aggregate.ModeOnDemand, MinAge: 65, MaxAge: 121, MinIncome: 0, MaxIncome: 75000, Amount: 3},
	}
}

// congestion returns 0-1 for an hour of day, peaking in the rush hours
func congestion(hour int) float64 {
	switch {
	case hour >= 7 && hour <= 9:
		return 0.8
	case hour >= 16 && hour <= 18:
		return 0.85
	case hour >= 11 && hour <= 13:
		return 0.5
	case hour >= 22 || hour <= 5:
		return 0.1
	default:
		return 0.35
	}
}

// startHour draws a trip start hour weighted toward the commute peaks
func (g *demo) startHour() int {
	for {
		h := 5 + g.rng.Intn(19)
		if g.rng.Float64() < 0.2+congestion(h) {
			return h
		}
	}
}

func (g *demo) chooseMode(distance float64, transitFriendly bool) string {
	r := g.rng.Float64()
	switch {
	case distance < 1 && r < 0.7:
		return aggregate.ModeWalk
	case transitFriendly && r < 0.45:
		return aggregate.ModeWalkTransit
	case distance > 6 && r < 0.2:
		return aggregate.ModeDriveTransit
	case r < 0.15:
		return aggregate.ModeOnDemand
	default:
		return aggregate.ModeCar
	}
}

var freeFlowMPH = map[string]float64{
	aggregate.ModeWalk:         3,
	aggregate.ModeCar:          35,
	aggregate.ModeOnDemand:     32,
	aggregate.ModeWalkTransit:  14,
	aggregate.ModeDriveTransit: 20,
}

func (g *demo) travel() {
	transitBoost := g.opts.Adjusted
	for _, p := range g.data.Persons {
		n := 2 + g.rng.Intn(2)
		for k := 0; k < n; k++ {
			hour := g.startHour()
			start := float64(hour*3600 + g.rng.Intn(3600))
			distance := utils.RoundTo(0.2+g.rng.ExpFloat64()*3.5, 2)
			mode := g.chooseMode(distance, transitBoost && p.Age < 30 || g.rng.Float64() < 0.25)

			speed := utils.Lerp(freeFlowMPH[mode], freeFlowMPH[mode]*0.4, congestion(hour))
			if mode == aggregate.ModeWalk {
				speed = freeFlowMPH[mode]
			}
			duration := math.Round(distance / speed * 3600)

			planned := mode
			if g.rng.Float64() < 0.1 {
				planned = aggregate.ModeCar
			}

			trip := domain.Trip{
				PersonID:     p.PersonID,
				TripID:       fmt.Sprintf("%s-%d", p.PersonID, k),
				PlannedMode:  planned,
				RealizedMode: mode,
				StartTime:    start,
				Duration:     duration,
				Distance:     distance,
				Cost:         g.cost(mode, distance),
			}
			g.data.Trips = append(g.data.Trips, trip)
			g.legs(trip)
		}
	}
}

func (g *demo) cost(mode string, distance float64) float64 {
	switch mode {
	case aggregate.ModeCar:
		return utils.RoundTo(0.58*distance, 2)
	case aggregate.ModeOnDemand:
		return utils.RoundTo(3+1.6*distance, 2)
	case aggregate.ModeWalkTransit, aggregate.ModeDriveTransit:
		return 1.75
	}
	return 0
}

// legs adds the bus leg of transit trips and the two on-demand vehicle
// movements of ride trips
func (g *demo) legs(t domain.Trip) {
	switch t.RealizedMode {
	case aggregate.ModeWalkTransit, aggregate.ModeDriveTransit:
		route := g.params.Routes[g.rng.Intn(len(g.params.Routes))]
		g.data.Legs = append(g.data.Legs, domain.Leg{
			PersonID:  t.PersonID,
			TripID:    t.TripID,
			Mode:      aggregate.VehicleBus,
			VehicleID: "bus-" + route,
			RouteID:   route,
			StartTime: t.StartTime + 300,
			EndTime:   t.StartTime + t.Duration,
			Distance:  t.Distance * 0.8,
		})
	case aggregate.ModeOnDemand:
		vehicle := fmt.Sprintf("rh-%d", g.rng.Intn(25))
		hour := int(t.StartTime/3600) % 24
		fetch := utils.RoundTo(0.3+g.rng.Float64()*2, 2)
		g.data.PathTraversals = append(g.data.PathTraversals,
			domain.PathTraversal{VehicleID: vehicle, Mode: aggregate.VehicleOnDemand, DepartureTime: t.StartTime - 300, ArrivalTime: t.StartTime, Hour: hour, Miles: fetch},
			domain.PathTraversal{VehicleID: vehicle, Mode: aggregate.VehicleOnDemand, DepartureTime: t.StartTime, ArrivalTime: t.StartTime + t.Duration, Hour: hour, Miles: t.Distance, Occupancy: 1},
		)
	}
}

// buses runs two vehicles per route each service hour
func (g *demo) buses() {
	fleet := make(map[string]string)
	for _, f := range g.data.FleetMix {
		if _, ok := fleet[f.RouteID]; !ok {
			fleet[f.RouteID] = f.VehicleType
		}
	}

	for _, route := range g.params.Routes {
		vt := fleet[route]
		if vt == "" {
			vt = g.params.DefaultVehicleType
		}
		capacity := g.params.VehicleTypes[vt].SeatingCapacity

		for hour := 5; hour < 24; hour++ {
			for bus := 0; bus < 2; bus++ {
				dep := float64(hour*3600 + bus*1800)
				load := congestion(hour) * (0.4 + 1.0*g.rng.Float64())
				g.data.PathTraversals = append(g.data.PathTraversals, domain.PathTraversal{
					VehicleID:       fmt.Sprintf("bus-%s-%d", route, bus),
					VehicleType:     vt,
					Mode:            aggregate.VehicleBus,
					RouteID:         route,
					DepartureTime:   dep,
					ArrivalTime:     dep + 1500,
					Hour:            hour,
					Miles:           utils.RoundTo(4+g.rng.Float64()*4, 2),
					Occupancy:       math.Floor(capacity * load),
					SeatingCapacity: capacity,
				})
			}
		}
	}
}

func (g *demo) scores() {
	categories := aggregate.ScoreCategories
	total := 0.0
	for _, c := range categories[:len(categories)-1] {
		v := utils.RoundTo(0.05+g.rng.Float64()*0.12, 3)
		if !g.opts.Adjusted {
			v = 0.1
		}
		total += v
		g.data.Scores = append(g.data.Scores, domain.SubmissionScore{Component: c, WeightedScore: v})
	}
	g.data.Scores = append(g.data.Scores, domain.SubmissionScore{
		Component:     categories[len(categories)-1],
		WeightedScore: utils.RoundTo(total, 3),
	})
}
