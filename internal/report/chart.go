package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/relfield/loyaltysim/internal/domain/rules"
)

// RenderChart writes the three-panel HTML chart for a run: core metrics,
// derived metrics, and the health score colored by loyalty-state band.
func RenderChart(w io.Writer, subjectName string, history []rules.Observation) error {
	if len(history) == 0 {
		return ErrNoData
	}

	steps := make([]string, len(history))
	for i, obs := range history {
		steps[i] = strconv.Itoa(obs.Step)
	}

	page := components.NewPage()
	page.PageTitle = "Loyalty Analysis - " + subjectName
	page.AddCharts(
		coreChart(subjectName, steps, history),
		derivedChart(steps, history),
		healthChart(steps, history),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

// WriteChartFile renders the chart to a file at path.
func WriteChartFile(path, subjectName string, history []rules.Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return RenderChart(f, subjectName, history)
}

func coreChart(subjectName string, steps []string, history []rules.Observation) *charts.Line {
	line := newPanel("Core Metrics", "Loyalty analysis for "+subjectName)
	line.SetGlobalOptions(charts.WithColorsOpts(opts.Colors{"#2ecc71", "#3498db", "#e74c3c"}))

	line.SetXAxis(steps).
		AddSeries("Satisfaction", lineData(history, func(o rules.Observation) float64 { return o.Satisfaction })).
		AddSeries("Dependency", lineData(history, func(o rules.Observation) float64 { return o.Dependency })).
		AddSeries("Manipulation", lineData(history, func(o rules.Observation) float64 { return o.Manipulation })).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func derivedChart(steps []string, history []rules.Observation) *charts.Line {
	line := newPanel("Derived Metrics", "Computed from the core inputs each step")
	line.SetGlobalOptions(charts.WithColorsOpts(opts.Colors{"#27ae60", "#9b59b6", "#f1c40f", "#e67e22"}))

	line.SetXAxis(steps).
		AddSeries("True Satisfaction", lineData(history, func(o rules.Observation) float64 { return o.TrueSatisfaction })).
		AddSeries("Vulnerability", lineData(history, func(o rules.Observation) float64 { return o.Vulnerability })).
		AddSeries("Autonomy", lineData(history, func(o rules.Observation) float64 { return o.Autonomy })).
		AddSeries("Power Imbalance", lineData(history, func(o rules.Observation) float64 { return o.PowerImbalance })).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func healthChart(steps []string, history []rules.Observation) *charts.Line {
	line := newPanel("Health Score", "Colored by loyalty-state band")

	// Piecewise coloring maps the score onto the state palette. The band
	// names come from the threshold mark lines below.
	pieces := make([]opts.Piece, 0, len(rules.Bands))
	for _, b := range rules.Bands {
		pieces = append(pieces, opts.Piece{
			Min:   float32(b.Min),
			Max:   float32(b.Max),
			Color: b.Color,
		})
	}
	line.SetGlobalOptions(charts.WithVisualMapOpts(opts.VisualMap{
		Type:   "piecewise",
		Min:    0,
		Max:    100,
		Pieces: pieces,
		Show:   opts.Bool(true),
	}))

	// Threshold lines mark the band edges.
	marks := make([]opts.MarkLineNameYAxisItem, 0, len(rules.Bands)-1)
	for _, b := range rules.Bands {
		if b.Min > 0 {
			marks = append(marks, opts.MarkLineNameYAxisItem{Name: string(b.State), YAxis: b.Min})
		}
	}

	line.SetXAxis(steps).
		AddSeries("Health Score", lineData(history, func(o rules.Observation) float64 { return o.HealthScore })).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithMarkLineNameYAxisItemOpts(marks...),
		)
	return line
}

func newPanel(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Step"}),
	)
	return line
}

func lineData(history []rules.Observation, pick func(rules.Observation) float64) []opts.LineData {
	data := make([]opts.LineData, len(history))
	for i, obs := range history {
		data[i] = opts.LineData{Value: pick(obs)}
	}
	return data
}
