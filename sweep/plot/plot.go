// Package plot renders sweep curves and Pareto frontiers as HTML charts.
// It is the harness's only presentation surface; the analysis it draws comes
// entirely from sweep.Assembler and sweep.ParetoFront.
package plot

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// Frontiers renders one line chart per (xMetric, yMetric) trade-off: each
// strategy contributes the Pareto frontier of its mean sweep curve. The
// chart is written as a self-contained HTML page.
func Frontiers(path, title string, curves map[string]*sweep.SweepCurve,
	xMetric, yMetric string, dirs map[string]sweep.Direction) error {

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%s vs %s (Pareto frontier)", xMetric, yMetric)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xMetric, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yMetric, Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		curve := curves[name]
		xs, ys, err := sweep.ParetoFront(
			curve.Series(xMetric), curve.Series(yMetric),
			dirs[xMetric].IsMinimized(), dirs[yMetric].IsMinimized(),
		)
		if err != nil {
			return fmt.Errorf("frontier for %s: %w", name, err)
		}
		data := make([]opts.LineData, len(xs))
		for i := range xs {
			data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
		}
		line.AddSeries(name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file %s: %w", path, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render chart %s: %w", path, err)
	}
	logrus.Infof("wrote chart %s", path)
	return nil
}

// SweepCurves renders the raw per-value mean of one metric against the swept
// hyperparameter for every strategy, without frontier extraction.
func SweepCurves(path, title string, curves map[string]*sweep.SweepCurve, metric string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("mean %s per hyperparameter value", metric)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "hyperparameter value", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: metric, Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		curve := curves[name]
		series := curve.Series(metric)
		data := make([]opts.LineData, len(curve.Values))
		for i, v := range curve.Values {
			data[i] = opts.LineData{Value: []interface{}{v, series[i]}}
		}
		line.AddSeries(name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file %s: %w", path, err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		return fmt.Errorf("render chart %s: %w", path, err)
	}
	logrus.Infof("wrote chart %s", path)
	return nil
}
