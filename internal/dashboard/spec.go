package dashboard

// Chart kinds.
const (
	KindPie     = "pie"
	KindScatter = "scatter"
)

// Default colour palette, assigned to slices and series in order.
var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// ChartSpec is a declarative chart description: the data to plot, which
// dataset fields it came from, and how to label it. The page renders it with
// Plotly; the render package rasterises it to PNG.
type ChartSpec struct {
	Kind   string            `json:"kind"`
	Title  string            `json:"title"`
	Fields Fields            `json:"fields"`
	Labels map[string]string `json:"labels,omitempty"`

	// Slices is set for pie charts.
	Slices []Slice `json:"slices,omitempty"`

	// Series is set for scatter charts, one per colour key.
	Series []Series `json:"series,omitempty"`

	// Empty is true when the selection matched no rows.
	Empty bool `json:"empty"`
}

// Fields names the dataset columns mapped onto chart channels.
type Fields struct {
	Names  string `json:"names,omitempty"`
	Values string `json:"values,omitempty"`
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Slice is one pie segment.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Series is a group of scatter points sharing a colour key.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Point is one scatter marker. Text is the hover label.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text,omitempty"`
}

// Charts is the pair of specs shown on the page for one selection.
type Charts struct {
	Pie     *ChartSpec `json:"pie"`
	Scatter *ChartSpec `json:"scatter"`
}

// AxisLabel returns the display label for field, falling back to the field name.
func (s *ChartSpec) AxisLabel(field string) string {
	if l, ok := s.Labels[field]; ok {
		return l
	}
	return field
}

// PointCount returns the number of scatter points across all series.
func (s *ChartSpec) PointCount() int {
	n := 0
	for _, sr := range s.Series {
		n += len(sr.Points)
	}
	return n
}

// Total returns the sum of all pie slice values.
func (s *ChartSpec) Total() float64 {
	var t float64
	for _, sl := range s.Slices {
		t += sl.Value
	}
	return t
}

func colorAt(i int) string {
	return palette[i%len(palette)]
}
