package aggregate

import (
	"fmt"
	"math"

	"github.com/smartcity/prizedash/internal/domain"
	"github.com/smartcity/prizedash/pkg/utils"
)

var modeColors = palette(Category10, len(Modes))

// modePie counts trips per mode and lays the wedges out clockwise in mode order.
// With no trips every angle is zero.
func modePie(title string, trips []domain.Trip, mode func(domain.Trip) string) domain.PieChart {
	counts := Group(trips, Grouping[domain.Trip]{
		Axis:   Modes,
		Series: []string{"trips"},
		Key: func(t domain.Trip) (int, int, bool) {
			return lookup(modePos, mode(t)), 0, true
		},
		Reduce: Count,
	})

	total := 0.0
	for _, c := range counts {
		total += c[0]
	}

	wedges := make([]domain.PieWedge, len(Modes))
	angle := 0.0
	for i, m := range Modes {
		n := counts[i][0]
		pct, frac := 0.0, 0.0
		if total > 0 {
			frac = n / total
			pct = utils.Clamp(100*frac, 0, 100)
		}
		w := domain.PieWedge{
			Mode:       m,
			Count:      int(n),
			Percentage: pct,
			StartAngle: angle,
			Color:      modeColors[i],
			Label:      fmt.Sprintf("%s %.1f%%", m, utils.RoundTo(pct, 1)),
		}
		angle += frac * 2 * math.Pi
		w.EndAngle = angle
		wedges[i] = w
	}
	if total > 0 {
		wedges[len(wedges)-1].EndAngle = 2 * math.Pi
	}

	return domain.PieChart{Title: title, Wedges: wedges}
}

var modePos = positions(Modes)

func realizedMode(t domain.Trip) string { return t.RealizedMode }
func plannedMode(t domain.Trip) string  { return t.PlannedMode }

func (a *Aggregator) modeChoiceByTime(trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Hours,
		Series: Modes,
		Key: func(t domain.Trip) (int, int, bool) {
			h, ok := hourOf(t.StartTime)
			return h, lookup(modePos, t.RealizedMode), ok
		},
		Reduce: Count,
	})
	return seriesTable("Mode choice by hour of day", "Hour", "Number of trips", Hours, Modes, modeColors, values)
}

func (a *Aggregator) modeChoiceByIncome(ix index, trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Modes,
		Series: IncomeBins.Labels,
		Key: func(t domain.Trip) (int, int, bool) {
			inc, ok := ix.income(t.PersonID)
			return lookup(modePos, t.RealizedMode), IncomeBins.Index(inc), ok
		},
		Reduce: Count,
	})
	return seriesTable("Mode choice by income group", "Mode", "Number of trips", Modes, IncomeBins.Labels, palette(Category10, IncomeBins.Len()), values)
}

func (a *Aggregator) modeChoiceByAge(ix index, trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   Modes,
		Series: AgeBins.Labels,
		Key: func(t domain.Trip) (int, int, bool) {
			age, ok := ix.age(t.PersonID)
			return lookup(modePos, t.RealizedMode), AgeBins.Index(age), ok
		},
		Reduce: Count,
	})
	return seriesTable("Mode choice by age group", "Mode", "Number of trips", Modes, AgeBins.Labels, palette(Category10, AgeBins.Len()), values)
}

func (a *Aggregator) modeChoiceByDistance(trips []domain.Trip) domain.SeriesTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   DistanceBins.Labels,
		Series: Modes,
		Key: func(t domain.Trip) (int, int, bool) {
			return DistanceBins.Index(t.Distance), lookup(modePos, t.RealizedMode), true
		},
		Reduce: Count,
	})
	return seriesTable("Mode choice by trip distance", "Trip distance [miles]", "Number of trips", DistanceBins.Labels, Modes, modeColors, values)
}
