package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/gonum/floats"

	"github.com/choice-sim/choice-sim/sim"
	"github.com/choice-sim/choice-sim/sim/bins"
	"github.com/choice-sim/choice-sim/sim/density"
)

// densityPlotPoints is the grid resolution of the rendered density curve.
const densityPlotPoints = 256

// controlPointer is implemented by densities built from a control polygon,
// which gets plotted alongside the interpolated curve.
type controlPointer interface {
	ControlPoints() (xs, ys []float64)
}

// RenderLoadChart writes a self-contained HTML report for one sweep: the
// per-k load curve, the reduction bar chart and the offered-load density.
func RenderLoadChart(path string, t *sim.LoadTable, d density.Density) error {
	page := components.NewPage().AddCharts(
		loadChart(t),
		reductionChart(t),
		densityChart(d),
	)
	return renderPage(page, path)
}

// RenderBinsChart writes the balls-into-bins HTML report: average maximum
// occupancy per strategy and the occupancy distribution around the mean.
func RenderBinsChart(path string, r *bins.Result) error {
	page := components.NewPage().AddCharts(
		maxLoadChart(r),
		occupancyChart(r),
	)
	return renderPage(page, path)
}

func renderPage(page *components.Page, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := page.Render(io.MultiWriter(f)); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}
	return nil
}

func loadChart(t *sim.LoadTable) *charts.Line {
	ks := make([]int, len(t.Rows))
	mean := make([]opts.LineData, len(t.Rows))
	p95 := make([]opts.LineData, len(t.Rows))
	p99 := make([]opts.LineData, len(t.Rows))
	for i, r := range t.Rows {
		ks[i] = r.K
		mean[i] = opts.LineData{Value: r.ExpectedLoad}
		p95[i] = opts.LineData{Value: r.P95}
		p99[i] = opts.LineData{Value: r.P99}
	}

	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Load of the chosen server",
			Subtitle: fmt.Sprintf("%d trials per subset size", t.Trials),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "k",
			AxisLabel: &opts.AxisLabel{
				Show:         true,
				Formatter:    "{value}",
				ShowMinLabel: true,
				ShowMaxLabel: true,
			},
			SplitLine: &opts.SplitLine{
				Show: true,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "load",
			AxisLabel: &opts.AxisLabel{
				Show:         true,
				Formatter:    "{value}",
				ShowMinLabel: true,
				ShowMaxLabel: true,
			},
		}),
	)
	chart.SetXAxis(ks).
		AddSeries("expected", mean).
		AddSeries("p95", p95).
		AddSeries("p99", p99)
	return chart
}

func reductionChart(t *sim.LoadTable) *charts.Bar {
	base := t.Rows[0].ExpectedLoad
	ks := make([]int, len(t.Rows))
	data := make([]opts.BarData, len(t.Rows))
	for i, r := range t.Rows {
		ks[i] = r.K
		pct := 0.0
		if base > 0 {
			pct = (base - r.ExpectedLoad) / base * 100
		}
		data[i] = opts.BarData{Value: pct}
	}

	chart := charts.NewBar()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Reduction vs single random choice",
			Subtitle: "percent of the k=1 expected load",
		}),
	)
	chart.SetXAxis(ks).AddSeries("reduction", data)
	return chart
}

func densityChart(d density.Density) *charts.Line {
	xs := floats.Span(make([]float64, densityPlotPoints+1), 0, 1)
	curve := make([]opts.LineData, 0, len(xs))
	for _, x := range xs {
		curve = append(curve, opts.LineData{Value: [2]float64{x, d.Evaluate(x)}})
	}

	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Offered load density",
			Subtitle: "normalized over [0, 1]",
		}),
	)
	chart.AddSeries("density", curve)
	if cp, ok := d.(controlPointer); ok {
		cx, cy := cp.ControlPoints()
		pts := make([]opts.LineData, 0, len(cx))
		for i := range cx {
			pts = append(pts, opts.LineData{Value: [2]float64{cx[i], cy[i]}})
		}
		chart.AddSeries("control points", pts)
	}
	return chart
}

func maxLoadChart(r *bins.Result) *charts.Bar {
	ks := make([]int, len(r.Strategies))
	data := make([]opts.BarData, len(r.Strategies))
	for i, s := range r.Strategies {
		ks[i] = s.K
		data[i] = opts.BarData{Value: s.AvgMaxLoad}
	}

	cfg := r.Config
	chart := charts.NewBar()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Average maximum bin occupancy",
			Subtitle: fmt.Sprintf("%d balls into %d bins, %d trials", cfg.Balls, cfg.Bins, cfg.Trials),
		}),
	)
	chart.SetXAxis(ks).AddSeries("avg max load", data)
	return chart
}

func occupancyChart(r *bins.Result) *charts.Bar {
	lo, hi := r.WindowRange()
	occ := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		occ = append(occ, v)
	}

	chart := charts.NewBar()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Final bin occupancy",
			Subtitle: fmt.Sprintf("probability of a bin holding v balls, mean %d", r.Config.MeanOccupancy()),
		}),
	)
	chart.SetXAxis(occ)
	for i := range r.Strategies {
		s := &r.Strategies[i]
		data := make([]opts.BarData, 0, len(occ))
		for _, v := range occ {
			data = append(data, opts.BarData{Value: s.OccupancyProb(v)})
		}
		chart.AddSeries(fmt.Sprintf("k=%d", s.K), data)
	}
	return chart
}
