package aggregate

import (
	"sort"

	"github.com/smartcity/prizedash/internal/domain"
)

func (a *Aggregator) fleetMix(data *domain.ScenarioData) domain.FleetMixTable {
	rows := append(make([]domain.FleetMix, 0, len(data.FleetMix)), data.FleetMix...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RouteID != rows[j].RouteID {
			return rows[i].RouteID < rows[j].RouteID
		}
		return rows[i].VehicleType < rows[j].VehicleType
	})
	return domain.FleetMixTable{Title: "Bus fleet mix", Rows: rows}
}

// routeSchedule draws each route's headway over the day. Adjusted routes get
// one segment per adjustment window; the rest sit at the baseline headway.
func (a *Aggregator) routeSchedule(ix index, data *domain.ScenarioData) domain.RouteSchedule {
	byRoute := make(map[string][]domain.FrequencyAdjustment)
	for _, f := range data.FrequencyAdjustments {
		byRoute[f.RouteID] = append(byRoute[f.RouteID], f)
	}

	colors := palette(Category20, len(ix.routes))
	out := domain.RouteSchedule{
		Title:  "Bus route headways [h]",
		Lines:  make([]domain.ScheduleLine, 0, len(ix.routes)),
		Starts: []domain.ScheduleMarker{},
		Ends:   []domain.ScheduleMarker{},
	}

	for i, route := range ix.routes {
		rows := byRoute[route]
		line := domain.ScheduleLine{RouteID: route, Color: colors[i]}

		if len(rows) == 0 {
			b := a.params.BaselineHeadwayHours
			line.Xs = []float64{0, 24}
			line.Ys = []float64{b, b}
			out.Lines = append(out.Lines, line)
			continue
		}

		sort.SliceStable(rows, func(x, y int) bool { return rows[x].StartTime < rows[y].StartTime })
		for _, f := range rows {
			start, end, headway := f.StartTime/3600, f.EndTime/3600, f.HeadwaySecs/3600
			line.Xs = append(line.Xs, start, end)
			line.Ys = append(line.Ys, headway, headway)
			out.Starts = append(out.Starts, domain.ScheduleMarker{RouteID: route, Color: colors[i], X: start, Y: headway})
			out.Ends = append(out.Ends, domain.ScheduleMarker{RouteID: route, Color: colors[i], X: end, Y: headway})
		}
		out.Lines = append(out.Lines, line)
	}

	return out
}

func (a *Aggregator) faresInput(data *domain.ScenarioData) domain.FaresTable {
	rows := append(make([]domain.Fare, 0, len(data.Fares)), data.Fares...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RouteID != rows[j].RouteID {
			return rows[i].RouteID < rows[j].RouteID
		}
		return rows[i].MinAge < rows[j].MinAge
	})
	return domain.FaresTable{Title: "Bus fares by route and age [$]", Rows: rows}
}

func (a *Aggregator) incentivesInput(data *domain.ScenarioData) domain.IncentivesTable {
	order := positions(IncentiveModes)
	rows := make([]domain.Incentive, 0, len(data.Incentives))
	for _, inc := range data.Incentives {
		if _, ok := order[inc.Mode]; ok {
			rows = append(rows, inc)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Mode != rows[j].Mode {
			return order[rows[i].Mode] < order[rows[j].Mode]
		}
		if rows[i].MinAge != rows[j].MinAge {
			return rows[i].MinAge < rows[j].MinAge
		}
		return rows[i].MinIncome < rows[j].MinIncome
	})
	return domain.IncentivesTable{Title: "Mode incentives by age and income [$]", Rows: rows}
}

// inputSummary counts the rows of every input table
func (a *Aggregator) inputSummary(data *domain.ScenarioData) domain.CategoryTable {
	counts := []struct {
		label string
		n     int
	}{
		{"trips", len(data.Trips)},
		{"legs", len(data.Legs)},
		{"path_traversals", len(data.PathTraversals)},
		{"persons", len(data.Persons)},
		{"households", len(data.Households)},
		{"activities", len(data.Activities)},
		{"frequency_adjustment", len(data.FrequencyAdjustments)},
		{"fares", len(data.Fares)},
		{"incentives", len(data.Incentives)},
		{"fleet_mix", len(data.FleetMix)},
		{"scores", len(data.Scores)},
	}

	rows := make([]domain.CategoryValue, len(counts))
	for i, c := range counts {
		rows[i] = domain.CategoryValue{Label: c.label, Value: float64(c.n), Color: Category10[i%len(Category10)]}
	}
	return domain.CategoryTable{Title: "Input table sizes", ValueLabel: "rows", Rows: rows}
}
