package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/launches"
	"github.com/launchdash/launchdash/internal/render"
)

type chartOpts struct {
	dataset string
	site    string
	low     float64
	high    float64
	format  string
	output  string
	width   int
	height  int
}

func newChartCmd() *cobra.Command {
	var o chartOpts
	cmd := &cobra.Command{
		Use:       "chart pie|scatter",
		Short:     "Compute one chart for a selection and write it as JSON or PNG",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{dashboard.KindPie, dashboard.KindScatter},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args[0], o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.dataset, "dataset", config.DefaultDatasetPath, "path to the launch records CSV")
	f.StringVar(&o.site, "site", dashboard.AllSites, "launch site, or ALL")
	f.Float64Var(&o.low, "low", 0, "lowest payload mass in kg (default: dataset minimum)")
	f.Float64Var(&o.high, "high", 0, "highest payload mass in kg (default: dataset maximum)")
	f.StringVar(&o.format, "format", "json", "output format: json or png")
	f.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	f.IntVar(&o.width, "width", config.DefaultRenderWidth, "PNG width in pixels")
	f.IntVar(&o.height, "height", config.DefaultRenderHeight, "PNG height in pixels")
	return cmd
}

func runChart(cmd *cobra.Command, kind string, o chartOpts) error {
	if o.format != "json" && o.format != "png" {
		return fmt.Errorf("--format must be json or png, got %q", o.format)
	}

	t, err := launches.Load(o.dataset)
	if err != nil {
		return err
	}

	sel := dashboard.DefaultSelection(t)
	sel.Site = o.site
	if cmd.Flags().Changed("low") {
		sel.Low = o.low
	}
	if cmd.Flags().Changed("high") {
		sel.High = o.high
	}

	var spec *dashboard.ChartSpec
	switch kind {
	case dashboard.KindPie:
		spec, err = dashboard.Pie(t, sel.Site)
	case dashboard.KindScatter:
		spec, err = dashboard.Scatter(t, sel)
	default:
		return fmt.Errorf("unknown chart %q", kind)
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if o.format == "png" {
		return render.PNG(w, spec, render.Options{Width: o.width, Height: o.height})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(spec)
}
