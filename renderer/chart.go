package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/ebezard/folio"
	"github.com/wcharczuk/go-chart/v2"
)

// Chart renders one selectable series as a PNG line chart, one line
// per ticker, skipping unavailable points. Tickers with fewer than two
// available points are left out: a line needs two ends.
func Chart(h *folio.History, field folio.Field, minYear int, w io.Writer) error {
	byTicker := h.Series(field, minYear)

	var series []chart.Series
	for _, ticker := range h.Tickers() {
		points := byTicker[ticker]
		if points == nil || points.Len() < 2 {
			continue
		}
		xs := make([]time.Time, 0, points.Len())
		ys := make([]float64, 0, points.Len())
		for day, v := range points.Values() {
			xs = append(xs, day.Time())
			ys = append(ys, v)
		}
		series = append(series, chart.TimeSeries{Name: ticker, XValues: xs, YValues: ys})
	}
	if len(series) == 0 {
		return fmt.Errorf("no series with at least 2 available points")
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s over time", field.Label()),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					if field == folio.FieldProfitRate {
						return fmt.Sprintf("%.0f%%", f*100)
					}
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
