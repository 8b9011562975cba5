package components

import (
	"fmt"
	"strings"

	"github.com/mcoot/skyjoscore/internal/services/chart"
)

// SVG chart geometry
const (
	chartWidth  = 600
	chartHeight = 300
	chartPad    = 40
)

var seriesColors = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#db2777", "#ca8a04",
}

func seriesColor(i int) string {
	return seriesColors[i%len(seriesColors)]
}

type chartScale struct {
	maxRound   int
	minY, maxY int
}

func newChartScale(series []chart.Series) chartScale {
	maxRound := 1
	for _, s := range series {
		if n := len(s.Points); n > maxRound {
			maxRound = n
		}
	}
	minY, maxY := chart.Bounds(series)
	if minY == maxY {
		maxY = minY + 1
	}
	return chartScale{maxRound: maxRound, minY: minY, maxY: maxY}
}

func (c chartScale) x(round int) float64 {
	if c.maxRound <= 1 {
		return chartPad
	}
	span := float64(chartWidth - 2*chartPad)
	return chartPad + span*float64(round-1)/float64(c.maxRound-1)
}

func (c chartScale) y(value int) float64 {
	span := float64(chartHeight - 2*chartPad)
	frac := float64(value-c.minY) / float64(c.maxY-c.minY)
	return chartHeight - chartPad - span*frac
}

// polyline formats the points attribute for one series line
func (c chartScale) polyline(points []chart.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", c.x(p.Round), c.y(p.Cumulative))
	}
	return b.String()
}

func (c chartScale) yAxisLabel(value int) string {
	return fmt.Sprintf("%d", value)
}
