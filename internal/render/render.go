package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/launchdash/launchdash/internal/dashboard"
)

// NoDataText is drawn on charts with nothing to plot.
const NoDataText = "No data for this selection"

// Options sizes the output image.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is the size used when a caller passes zero values.
var DefaultOptions = Options{Width: 800, Height: 500}

func (o Options) normalize() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	return o
}

// PNG writes spec to w as a PNG image.
func PNG(w io.Writer, spec *dashboard.ChartSpec, opts Options) error {
	opts = opts.normalize()
	switch spec.Kind {
	case dashboard.KindPie:
		return pie(w, spec, opts)
	case dashboard.KindScatter:
		return scatter(w, spec, opts)
	default:
		return fmt.Errorf("render: unsupported chart kind %q", spec.Kind)
	}
}

func pie(w io.Writer, spec *dashboard.ChartSpec, opts Options) error {
	values := make([]chart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%g)", s.Label, s.Value),
			Value: s.Value,
			Style: chart.Style{FillColor: color(s.Color), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return placeholder(w, spec.Title, opts)
	}

	pc := chart.PieChart{
		Title:  spec.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Values: values,
	}
	if err := pc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: pie: %w", err)
	}
	return nil
}

func scatter(w io.Writer, spec *dashboard.ChartSpec, opts Options) error {
	if spec.PointCount() == 0 {
		return placeholder(w, spec.Title, opts)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(spec.Series))
	for _, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
		}
		c := color(s.Color)
		series = append(series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: c,
				DotWidth:    5,
				DotColor:    c,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	// A single distinct x value would give go-chart a zero-width range.
	if maxX-minX < 1 {
		minX, maxX = minX-500, maxX+500
	}

	ch := chart.Chart{
		Title:  spec.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  spec.AxisLabel(spec.Fields.X),
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:  spec.AxisLabel(spec.Fields.Y),
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}
	return nil
}

// placeholder draws a white canvas with the chart title and NoDataText.
func placeholder(w io.Writer, title string, opts Options) error {
	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("render: placeholder: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("render: placeholder font: %w", err)
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(opts.Width, 0)
	r.LineTo(opts.Width, opts.Height)
	r.LineTo(0, opts.Height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(16)
	if title != "" {
		tb := r.MeasureText(title)
		r.Text(title, (opts.Width-tb.Width())/2, 40)
	}

	r.SetFontColor(drawing.ColorFromHex("888888"))
	r.SetFontSize(12)
	nb := r.MeasureText(NoDataText)
	r.Text(NoDataText, (opts.Width-nb.Width())/2, opts.Height/2)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("render: placeholder: %w", err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
