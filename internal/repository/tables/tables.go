// Package tables names the scenario input tables and decodes raw named-column
// rows into typed domain records.
package tables

import (
	"path/filepath"
)

// Input table names
const (
	Trips                = "trips"
	Legs                 = "legs"
	PathTraversals       = "path_traversals"
	Persons              = "persons"
	Households           = "households"
	Activities           = "activities"
	FrequencyAdjustments = "frequency_adjustment"
	Fares                = "fares"
	Incentives           = "incentives"
	FleetMix             = "fleet_mix"
	Scores               = "scores"
)

// Names lists every input table in load order
var Names = []string{
	Trips,
	Legs,
	PathTraversals,
	Persons,
	Households,
	Activities,
	FrequencyAdjustments,
	Fares,
	Incentives,
	FleetMix,
	Scores,
}

// files maps each table to its path inside a scenario directory
var files = map[string]string{
	Trips:                "trips_dataframe.csv",
	Legs:                 "legs_dataframe.csv",
	PathTraversals:       "path_traversals_dataframe.csv",
	Persons:              "persons_dataframe.csv",
	Households:           "households_dataframe.csv",
	Activities:           "activities_dataframe.csv",
	FrequencyAdjustments: filepath.Join("submission-inputs", "FrequencyAdjustment.csv"),
	Fares:                filepath.Join("submission-inputs", "MassTransitFares.csv"),
	Incentives:           filepath.Join("submission-inputs", "ModeIncentives.csv"),
	FleetMix:             filepath.Join("submission-inputs", "VehicleFleetMix.csv"),
	Scores:               filepath.Join("competition", "submissionScores.csv"),
}

// File returns the relative path of a table inside a scenario directory
func File(name string) string {
	return files[name]
}

// aliases lists alternative (lower-cased) headers accepted for a canonical column
var aliases = map[string][]string{
	"person_id":        {"pid", "personid", "person"},
	"trip_id":          {"tripid"},
	"household_id":     {"householdid", "hid"},
	"vehicle_id":       {"vehicleid", "vehicle"},
	"vehicle_type":     {"vehicletypeid", "vehicletype"},
	"route_id":         {"routeid"},
	"planned_mode":     {"plannedtripmode"},
	"realized_mode":    {"realizedtripmode"},
	"start_time":       {"starttime"},
	"end_time":         {"endtime"},
	"departure_time":   {"departuretime"},
	"arrival_time":     {"arrivaltime"},
	"seating_capacity": {"seatingcapacity"},
	"occupancy":        {"numpassengers"},
	"headway_secs":     {"headway"},
	"component":        {"component name"},
	"weighted_score":   {"weighted score"},
}
