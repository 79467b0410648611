// Package aggregate turns the loaded tables of one scenario into the fixed
// catalog of chart-ready result tables. Every function here is a pure
// transform of its inputs.
package aggregate

import (
	"github.com/smartcity/prizedash/internal/domain"
)

// Aggregator builds result sets with a fixed set of parameters
type Aggregator struct {
	params Params
}

// New creates an aggregator
func New(params Params) *Aggregator {
	return &Aggregator{params: params}
}

// Params returns the parameters the aggregator was built with
func (a *Aggregator) Params() Params {
	return a.params
}

// Build computes every result table of a scenario. data is only read.
func (a *Aggregator) Build(name string, data *domain.ScenarioData) *domain.ResultSet {
	if data == nil {
		data = &domain.ScenarioData{Name: name}
	}
	ix := buildIndex(a.params, data)
	trips := data.Trips

	return &domain.ResultSet{
		Scenario: name,

		NormalizedScores: a.normalizedScores(data),
		FleetMixInput:    a.fleetMix(data),
		RouteSchedule:    a.routeSchedule(ix, data),
		FaresInput:       a.faresInput(data),
		IncentivesInput:  a.incentivesInput(data),

		ModePlannedPie:       modePie("Planned mode choice", trips, plannedMode),
		ModeRealizedPie:      modePie("Realized mode choice", trips, realizedMode),
		ModeChoiceByTime:     a.modeChoiceByTime(trips),
		ModeChoiceByIncome:   a.modeChoiceByIncome(ix, trips),
		ModeChoiceByAge:      a.modeChoiceByAge(ix, trips),
		ModeChoiceByDistance: a.modeChoiceByDistance(trips),

		TravelTimeByMode:           a.travelTimeByMode(trips),
		TravelTimePerPassengerTrip: a.travelTimePerPassengerTrip(trips),
		MilesTravelledPerMode:      a.milesTravelledPerMode(trips),
		BusVMTByRidership:          a.busVMTByRidership(ix, data.PathTraversals),
		OnDemandVMTByPhase:         a.onDemandVMTByPhase(data.PathTraversals),
		TravelSpeed:                a.travelSpeed(trips),

		TravelExpenditure: a.travelExpenditure(trips),
		Crowding:          a.crowding(ix, data.PathTraversals),

		TransitCostBenefit: a.transitCostBenefit(ix, data),
		IncentivesByMode:   a.incentivesByMode(ix, data),

		EmissionsPerMode: a.emissionsPerMode(trips),

		InputSummary: a.inputSummary(data),
	}
}
