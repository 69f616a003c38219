package dashboard

import (
	"github.com/launchdash/launchdash/internal/launches"
)

const (
	scatterTitle = "Payload vs. Success for selected site"
	outcomeLabel = "Launch Outcome"
)

// Scatter builds the payload-vs-outcome scatter for sel. Rows are those
// returned by Filter; each booster version category becomes one series, in
// order of first appearance.
func Scatter(t *launches.Table, sel Selection) (*ChartSpec, error) {
	rows, err := Filter(t, sel)
	if err != nil {
		return nil, err
	}
	return scatterSpec(rows), nil
}

func scatterSpec(rows []launches.Record) *ChartSpec {
	spec := &ChartSpec{
		Kind:  KindScatter,
		Title: scatterTitle,
		Fields: Fields{
			X:     launches.ColPayloadMass,
			Y:     launches.ColClass,
			Color: launches.ColBoosterVersionCategory,
		},
		Labels: map[string]string{launches.ColClass: outcomeLabel},
	}

	byCategory := make(map[string]int)
	for _, r := range rows {
		i, ok := byCategory[r.BoosterVersionCategory]
		if !ok {
			i = len(spec.Series)
			byCategory[r.BoosterVersionCategory] = i
			spec.Series = append(spec.Series, Series{
				Name:   r.BoosterVersionCategory,
				Color:  colorAt(i),
				Points: make([]Point, 0),
			})
		}
		spec.Series[i].Points = append(spec.Series[i].Points, Point{
			X:    r.PayloadMassKg,
			Y:    float64(r.Class),
			Text: hoverText(r),
		})
	}
	spec.Empty = len(rows) == 0
	return spec
}

func hoverText(r launches.Record) string {
	if r.BoosterVersion != "" {
		return r.LaunchSite + " / " + r.BoosterVersion
	}
	return r.LaunchSite
}
