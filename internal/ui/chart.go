package ui

import "github.com/guptarohit/asciigraph"

const (
	chartHeight   = 6
	minChartWidth = 10
)

// Line colors of the three charts.
var (
	cpuColor      = asciigraph.Blue
	memoryColor   = asciigraph.Green
	downloadColor = asciigraph.Blue
	uploadColor   = asciigraph.DarkOrange
)

type chart struct {
	caption string
	series  [][]float64
	colors  []asciigraph.AnsiColor
	legends []string
	// percent pins the y axis to 0..100.
	percent bool
}

// render draws the chart into width columns. Series shorter than two points
// are padded so the first samples still show as a line.
func (c chart) render(width int, axis asciigraph.AnsiColor) string {
	data := make([][]float64, 0, len(c.series))
	for _, s := range c.series {
		data = append(data, padSeries(s))
	}

	opts := []asciigraph.Option{
		asciigraph.Height(chartHeight),
		asciigraph.Caption(c.caption),
		asciigraph.Precision(1),
		asciigraph.AxisColor(axis),
		asciigraph.LabelColor(axis),
		asciigraph.CaptionColor(axis),
		asciigraph.SeriesColors(c.colors...),
		asciigraph.LowerBound(0),
	}
	if c.percent {
		opts = append(opts, asciigraph.UpperBound(100))
	}
	if len(c.legends) > 0 {
		opts = append(opts, asciigraph.SeriesLegends(c.legends...))
	}
	// Leave room for the y axis labels.
	if w := width - 10; w >= minChartWidth {
		opts = append(opts, asciigraph.Width(w))
	}

	return asciigraph.PlotMany(data, opts...)
}

func padSeries(s []float64) []float64 {
	switch len(s) {
	case 0:
		return []float64{0, 0}
	case 1:
		return []float64{s[0], s[0]}
	default:
		return s
	}
}

// scale divides every value, e.g. to show bytes/s as KB/s.
func scale(s []float64, by float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v / by
	}
	return out
}

func cpuChart(history []float64) chart {
	return chart{
		caption: "CPU Usage (%)",
		series:  [][]float64{history},
		colors:  []asciigraph.AnsiColor{cpuColor},
		percent: true,
	}
}

func memoryChart(history []float64) chart {
	return chart{
		caption: "Memory Usage (%)",
		series:  [][]float64{history},
		colors:  []asciigraph.AnsiColor{memoryColor},
		percent: true,
	}
}

func networkChart(download, upload []float64) chart {
	return chart{
		caption: "Network Usage (KB/s)",
		series:  [][]float64{scale(download, 1024), scale(upload, 1024)},
		colors:  []asciigraph.AnsiColor{downloadColor, uploadColor},
		legends: []string{"Download", "Upload"},
	}
}
