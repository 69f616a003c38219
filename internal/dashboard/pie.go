package dashboard

import (
	"sort"
	"strconv"

	"github.com/launchdash/launchdash/internal/launches"
)

// Pie titles.
const (
	pieTitleAll  = "Total Success Launches by Site"
	pieTitleSite = "Total Success Launches for site "
)

// Pie builds the success pie for site.
//
// For AllSites each slice is a launch site valued by the sum of its class
// column, i.e. its number of successful launches; sites with no successes
// keep a zero slice. For a single site each slice is an outcome class ("0",
// "1") valued by the number of that site's launches with that outcome.
func Pie(t *launches.Table, site string) (*ChartSpec, error) {
	if err := validateSite(t, site); err != nil {
		return nil, err
	}
	if site == AllSites {
		return pieAllSites(t), nil
	}
	return pieForSite(t, site), nil
}

func pieAllSites(t *launches.Table) *ChartSpec {
	sums := make(map[string]float64)
	t.Each(func(r launches.Record) {
		sums[r.LaunchSite] += float64(r.Class)
	})

	spec := &ChartSpec{
		Kind:  KindPie,
		Title: pieTitleAll,
		Fields: Fields{
			Names:  launches.ColLaunchSite,
			Values: launches.ColClass,
		},
	}
	for i, s := range t.Sites() {
		spec.Slices = append(spec.Slices, Slice{Label: s, Value: sums[s], Color: colorAt(i)})
	}
	// Zero-valued slices are kept, but a pie with no successes draws nothing.
	spec.Empty = spec.Total() == 0
	return spec
}

func pieForSite(t *launches.Table, site string) *ChartSpec {
	counts := make(map[int]int)
	t.Each(func(r launches.Record) {
		if r.LaunchSite == site {
			counts[r.Class]++
		}
	})

	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	spec := &ChartSpec{
		Kind:   KindPie,
		Title:  pieTitleSite + site,
		Fields: Fields{Names: launches.ColClass},
	}
	for _, c := range classes {
		spec.Slices = append(spec.Slices, Slice{
			Label: strconv.Itoa(c),
			Value: float64(counts[c]),
			Color: colorAt(c),
		})
	}
	spec.Empty = len(spec.Slices) == 0
	return spec
}
