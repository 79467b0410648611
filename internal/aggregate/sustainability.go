package aggregate

import (
	"github.com/smartcity/prizedash/internal/domain"
)

// emissionsPerMode estimates PM2.5 from trip miles. Transit trips are
// charged at the bus rate.
func (a *Aggregator) emissionsPerMode(trips []domain.Trip) domain.CategoryTable {
	values := Group(trips, Grouping[domain.Trip]{
		Axis:   EmissionBuckets,
		Series: []string{"grams"},
		Key: func(t domain.Trip) (int, int, bool) {
			return emissionBucket(t.RealizedMode), 0, true
		},
		Value: func(t domain.Trip) float64 {
			return t.Distance * a.params.PM25GramsPerMile[EmissionBuckets[emissionBucket(t.RealizedMode)]]
		},
		Reduce: Sum,
	})
	return categoryTable("PM 2.5 emissions by mode", "PM 2.5 [g]", EmissionBuckets, palette(Category10, len(EmissionBuckets)), values)
}
