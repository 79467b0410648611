package tables

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/smartcity/prizedash/internal/domain"
)

// ErrMalformedRow marks input rows that cannot be decoded
var ErrMalformedRow = errors.New("malformed row")

// Decode converts the raw tables of one scenario into typed records.
// Tables that are absent from raw stay empty.
func Decode(name string, raw []domain.RawTable) (*domain.ScenarioData, error) {
	data := &domain.ScenarioData{Name: name}

	for _, t := range raw {
		if len(t.Rows) == 0 {
			continue
		}
		var err error
		switch t.Name {
		case Trips:
			data.Trips, err = decodeTrips(t)
		case Legs:
			data.Legs, err = decodeLegs(t)
		case PathTraversals:
			data.PathTraversals, err = decodePathTraversals(t)
		case Persons:
			data.Persons, err = decodePersons(t)
		case Households:
			data.Households, err = decodeHouseholds(t)
		case Activities:
			data.Activities, err = decodeActivities(t)
		case FrequencyAdjustments:
			data.FrequencyAdjustments, err = decodeFrequencyAdjustments(t)
		case Fares:
			data.Fares, err = decodeFares(t)
		case Incentives:
			data.Incentives, err = decodeIncentives(t)
		case FleetMix:
			data.FleetMix, err = decodeFleetMix(t)
		case Scores:
			data.Scores, err = decodeScores(t)
		default:
			return nil, fmt.Errorf("tables: unknown table %q", t.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("tables: failed to decode %s for scenario %s: %w", t.Name, name, err)
		}
	}

	return data, nil
}

// header resolves canonical column names against a table header
type header struct {
	table string
	idx   map[string]int
}

func makeHeader(t domain.RawTable) header {
	idx := make(map[string]int, len(t.Columns))
	for i, h := range t.Columns {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return header{table: t.Name, idx: idx}
}

func (h header) index(col string) (int, bool) {
	if i, ok := h.idx[col]; ok {
		return i, true
	}
	for _, alt := range aliases[col] {
		if i, ok := h.idx[alt]; ok {
			return i, true
		}
	}
	return -1, false
}

func (h header) has(col string) bool {
	_, ok := h.index(col)
	return ok
}

func (h header) require(cols ...string) error {
	for _, c := range cols {
		if !h.has(c) {
			return fmt.Errorf("%w: %s is missing column %q", ErrMalformedRow, h.table, c)
		}
	}
	return nil
}

// row reads typed fields from one record, keeping the first error
type row struct {
	h      header
	n      int
	record []string
	err    error
}

func (r *row) str(col string) string {
	i, ok := r.h.index(col)
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r *row) num(col string) float64 {
	s := r.str(col)
	if s == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		r.err = fmt.Errorf("%w: %s row %d column %s: %q is not a number", ErrMalformedRow, r.h.table, r.n+1, col, s)
		return 0
	}
	return v
}

func (r *row) interval(col string) (float64, float64) {
	s := r.str(col)
	if s == "" || r.err != nil {
		return 0, 0
	}
	lo, hi, err := ParseInterval(s)
	if err != nil {
		r.err = fmt.Errorf("%w: %s row %d column %s: %v", ErrMalformedRow, r.h.table, r.n+1, col, err)
	}
	return lo, hi
}

// ParseInterval converts interval text such as "[1:49]" or "(0:120]" with
// inclusive integer bounds into a half-open [lo, hi) range.
func ParseInterval(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return 0, 0, fmt.Errorf("invalid interval %q", s)
	}
	open, end := s[0], s[len(s)-1]
	if (open != '[' && open != '(') || (end != ']' && end != ')') {
		return 0, 0, fmt.Errorf("invalid interval %q", s)
	}
	body := s[1 : len(s)-1]
	sep := strings.IndexAny(body, ":,")
	if sep < 0 {
		return 0, 0, fmt.Errorf("invalid interval %q", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(body[:sep]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(body[sep+1:]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	if open == '(' {
		lo++
	}
	if end == ']' {
		hi++
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("invalid interval %q: upper bound below lower bound", s)
	}
	return lo, hi, nil
}

// decodeRows runs fn over every record and stops at the first error
func decodeRows[T any](t domain.RawTable, required []string, fn func(r *row) T) ([]T, error) {
	h := makeHeader(t)
	if err := h.require(required...); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(t.Rows))
	for i, record := range t.Rows {
		r := &row{h: h, n: i, record: record}
		v := fn(r)
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeTrips(t domain.RawTable) ([]domain.Trip, error) {
	return decodeRows(t, []string{"person_id", "realized_mode", "start_time"}, func(r *row) domain.Trip {
		return domain.Trip{
			PersonID:     r.str("person_id"),
			TripID:       r.str("trip_id"),
			PlannedMode:  r.str("planned_mode"),
			RealizedMode: r.str("realized_mode"),
			StartTime:    r.num("start_time"),
			Duration:     r.num("duration"),
			Distance:     r.num("distance"),
			Cost:         r.num("cost"),
		}
	})
}

func decodeLegs(t domain.RawTable) ([]domain.Leg, error) {
	return decodeRows(t, []string{"person_id", "mode"}, func(r *row) domain.Leg {
		return domain.Leg{
			PersonID:  r.str("person_id"),
			TripID:    r.str("trip_id"),
			Mode:      r.str("mode"),
			VehicleID: r.str("vehicle_id"),
			RouteID:   r.str("route_id"),
			StartTime: r.num("start_time"),
			EndTime:   r.num("end_time"),
			Distance:  r.num("distance"),
		}
	})
}

func decodePathTraversals(t domain.RawTable) ([]domain.PathTraversal, error) {
	h := makeHeader(t)
	hasHour := h.has("hour")
	return decodeRows(t, []string{"vehicle_id", "mode", "miles"}, func(r *row) domain.PathTraversal {
		p := domain.PathTraversal{
			VehicleID:       r.str("vehicle_id"),
			VehicleType:     r.str("vehicle_type"),
			Mode:            r.str("mode"),
			RouteID:         r.str("route_id"),
			DepartureTime:   r.num("departure_time"),
			ArrivalTime:     r.num("arrival_time"),
			Miles:           r.num("miles"),
			Occupancy:       r.num("occupancy"),
			SeatingCapacity: r.num("seating_capacity"),
		}
		// hours past midnight wrap; negative hours stay negative and are dropped later
		if hasHour && r.str("hour") != "" {
			p.Hour = int(math.Mod(math.Floor(r.num("hour")), 24))
		} else {
			p.Hour = int(math.Mod(math.Floor(p.DepartureTime/3600), 24))
		}
		return p
	})
}

func decodePersons(t domain.RawTable) ([]domain.Person, error) {
	return decodeRows(t, []string{"person_id"}, func(r *row) domain.Person {
		return domain.Person{
			PersonID:    r.str("person_id"),
			HouseholdID: r.str("household_id"),
			Age:         r.num("age"),
		}
	})
}

func decodeHouseholds(t domain.RawTable) ([]domain.Household, error) {
	return decodeRows(t, []string{"household_id", "income"}, func(r *row) domain.Household {
		return domain.Household{
			HouseholdID: r.str("household_id"),
			Income:      r.num("income"),
		}
	})
}

func decodeActivities(t domain.RawTable) ([]domain.Activity, error) {
	return decodeRows(t, []string{"person_id"}, func(r *row) domain.Activity {
		return domain.Activity{
			PersonID:  r.str("person_id"),
			Type:      r.str("type"),
			StartTime: r.num("start_time"),
			EndTime:   r.num("end_time"),
		}
	})
}

func decodeFrequencyAdjustments(t domain.RawTable) ([]domain.FrequencyAdjustment, error) {
	return decodeRows(t, []string{"route_id", "start_time", "end_time", "headway_secs"}, func(r *row) domain.FrequencyAdjustment {
		return domain.FrequencyAdjustment{
			RouteID:     r.str("route_id"),
			StartTime:   r.num("start_time"),
			EndTime:     r.num("end_time"),
			HeadwaySecs: r.num("headway_secs"),
		}
	})
}

func decodeFares(t domain.RawTable) ([]domain.Fare, error) {
	h := makeHeader(t)
	bounded := h.has("min_age") && h.has("max_age")
	required := []string{"route_id", "amount", "age"}
	if bounded {
		required = []string{"route_id", "amount", "min_age", "max_age"}
	}
	return decodeRows(t, required, func(r *row) domain.Fare {
		f := domain.Fare{RouteID: r.str("route_id"), Amount: r.num("amount")}
		if bounded {
			f.MinAge, f.MaxAge = r.num("min_age"), r.num("max_age")
		} else {
			f.MinAge, f.MaxAge = r.interval("age")
		}
		return f
	})
}

func decodeIncentives(t domain.RawTable) ([]domain.Incentive, error) {
	h := makeHeader(t)
	bounded := h.has("min_age") && h.has("max_age") && h.has("min_income") && h.has("max_income")
	required := []string{"mode", "amount", "age", "income"}
	if bounded {
		required = []string{"mode", "amount", "min_age", "max_age", "min_income", "max_income"}
	}
	return decodeRows(t, required, func(r *row) domain.Incentive {
		inc := domain.Incentive{Mode: r.str("mode"), Amount: r.num("amount")}
		if bounded {
			inc.MinAge, inc.MaxAge = r.num("min_age"), r.num("max_age")
			inc.MinIncome, inc.MaxIncome = r.num("min_income"), r.num("max_income")
		} else {
			inc.MinAge, inc.MaxAge = r.interval("age")
			inc.MinIncome, inc.MaxIncome = r.interval("income")
		}
		return inc
	})
}

func decodeFleetMix(t domain.RawTable) ([]domain.FleetMix, error) {
	return decodeRows(t, []string{"route_id", "vehicle_type"}, func(r *row) domain.FleetMix {
		return domain.FleetMix{
			RouteID:     r.str("route_id"),
			VehicleType: r.str("vehicle_type"),
		}
	})
}

func decodeScores(t domain.RawTable) ([]domain.SubmissionScore, error) {
	return decodeRows(t, []string{"component", "weighted_score"}, func(r *row) domain.SubmissionScore {
		return domain.SubmissionScore{
			Component:     r.str("component"),
			WeightedScore: r.num("weighted_score"),
		}
	})
}
