package service

import (
	"fmt"

	"github.com/smartcity/prizedash/internal/domain"
)

// Tab is one page of the comparison dashboard
type Tab string

const (
	TabInputs  Tab = "inputs"
	TabScores  Tab = "scores"
	TabOutputs Tab = "outputs"
)

// ParseTab validates a tab name
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabInputs, TabScores, TabOutputs:
		return t, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Option is one checklist entry of a tab
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var inputOptions = []Option{
	{Label: "Frequency adjustments", Value: "freq"},
	{Label: "Fares", Value: "fares"},
	{Label: "Incentives", Value: "inc"},
	{Label: "Fleet mix", Value: "fleet"},
}

var outputOptions = []Option{
	{Label: "Mode choice", Value: "mode"},
	{Label: "Congestion", Value: "congestion"},
	{Label: "Level of service", Value: "los"},
	{Label: "Transit costs and benefits", Value: "transit"},
	{Label: "Sustainability", Value: "sustainability"},
}

// charts maps each checklist option to the result tables it shows
var charts = map[Tab]map[string][]string{
	TabInputs: {
		"freq":  {domain.TableRouteScheduleInput},
		"fares": {domain.TableFaresInput},
		"inc":   {domain.TableModeIncentivesInput},
		"fleet": {domain.TableFleetMixInput},
	},
	TabOutputs: {
		"mode": {
			domain.TableModePlannedPie,
			domain.TableModeRealizedPie,
			domain.TableModeChoiceByTime,
			domain.TableModeChoiceByIncome,
			domain.TableModeChoiceByAge,
			domain.TableModeChoiceByDistance,
		},
		"congestion": {
			domain.TableTravelTimeByMode,
			domain.TableTravelTimePerPassengerTrip,
			domain.TableMilesTravelledPerMode,
			domain.TableBusVMTByRidership,
			domain.TableOnDemandVMTByPhase,
			domain.TableTravelSpeed,
		},
		"los":            {domain.TableTravelExpenditure, domain.TableCrowding},
		"transit":        {domain.TableTransitCostBenefit, domain.TableIncentivesByMode},
		"sustainability": {domain.TableEmissionsPerMode},
	},
}

// ChecklistOptions returns the checklist entries of a tab. The scores tab has none.
func ChecklistOptions(tab Tab) []Option {
	switch tab {
	case TabInputs:
		return append([]Option(nil), inputOptions...)
	case TabOutputs:
		return append([]Option(nil), outputOptions...)
	}
	return []Option{}
}

// VisibleCharts returns the result tables shown for a tab and its checked
// options, in catalog order. Unknown options are ignored.
func VisibleCharts(tab Tab, checked []string) []string {
	show := make(map[string]bool)
	if tab == TabScores {
		show[domain.TableNormalizedScores] = true
	}
	for _, opt := range checked {
		for _, table := range charts[tab][opt] {
			show[table] = true
		}
	}

	visible := []string{}
	for _, table := range domain.ResultTables {
		if show[table] {
			visible = append(visible, table)
		}
	}
	return visible
}
