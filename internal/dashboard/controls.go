package dashboard

import "github.com/launchdash/launchdash/internal/launches"

// PageTitle is the heading shown above the controls.
const PageTitle = "SpaceX Launch Records Dashboard"

// Range slider bounds, independent of the data.
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000
)

// Controls describes the interactive controls offered for a table.
type Controls struct {
	Title    string   `json:"title"`
	Dropdown Dropdown `json:"dropdown"`
	Slider   Slider   `json:"slider"`
}

// Dropdown is the launch site selector.
type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Slider is the payload range selector.
type Slider struct {
	ID    string     `json:"id"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

// Mark is a labelled tick on the slider.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// NewControls derives the control contract from t: one option per site after
// "All Sites", and a slider defaulting to the table's payload bounds.
func NewControls(t *launches.Table) Controls {
	sites := t.Sites()
	opts := make([]Option, 0, len(sites)+1)
	opts = append(opts, Option{Label: "All Sites", Value: AllSites})
	for _, s := range sites {
		opts = append(opts, Option{Label: s, Value: s})
	}

	return Controls{
		Title: PageTitle,
		Dropdown: Dropdown{
			ID:          "site-dropdown",
			Options:     opts,
			Value:       AllSites,
			Placeholder: "Select a Launch Site",
			Searchable:  true,
		},
		Slider: Slider{
			ID:   "payload-slider",
			Min:  SliderMin,
			Max:  SliderMax,
			Step: SliderStep,
			Marks: []Mark{
				{Value: 0, Label: "0"},
				{Value: 2500, Label: "2500"},
				{Value: 5000, Label: "5000"},
				{Value: 7500, Label: "7500"},
				{Value: 10000, Label: "10000"},
			},
			Value: [2]float64{t.MinPayload(), t.MaxPayload()},
		},
	}
}
