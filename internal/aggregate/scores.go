package aggregate

import (
	"strings"

	"github.com/smartcity/prizedash/internal/domain"
)

var scoreGroupColors = map[string]string{
	"accessibility":    Category10[0],
	"congestion":       Category10[1],
	"level of service": Category10[2],
	"sustainability":   Category10[3],
}

func scoreColor(category string) string {
	group, _, found := strings.Cut(category, ":")
	if !found {
		return Category10[4]
	}
	if c, ok := scoreGroupColors[strings.ToLower(strings.TrimSpace(group))]; ok {
		return c
	}
	return Category10[4]
}

func normalizeComponent(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// normalizedScores lists the weighted score of every fixed category, last
// category first so the overall score sits on top of a horizontal bar chart.
func (a *Aggregator) normalizedScores(data *domain.ScenarioData) domain.CategoryTable {
	scores := make(map[string]float64, len(data.Scores))
	for _, s := range data.Scores {
		scores[normalizeComponent(s.Component)] = s.WeightedScore
	}

	rows := make([]domain.CategoryValue, 0, len(ScoreCategories))
	for i := len(ScoreCategories) - 1; i >= 0; i-- {
		c := ScoreCategories[i]
		rows = append(rows, domain.CategoryValue{
			Label: c,
			Value: scores[normalizeComponent(c)],
			Color: scoreColor(c),
		})
	}
	return domain.CategoryTable{Title: "Weighted submission scores", ValueLabel: "Weighted score", Rows: rows}
}
