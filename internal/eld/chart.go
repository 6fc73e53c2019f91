package eld

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	ChartWidth  = 1200
	ChartHeight = 400
)

// RenderPNG draws the panel as a stepped duty-status line over the 24-hour grid.
// Off-Duty is the top row and On-Duty the bottom row, matching the paper form.
func RenderPNG(w io.Writer, p Panel) error {
	xs := make([]float64, 0, 2*(Slots-1))
	ys := make([]float64, 0, 2*(Slots-1))
	for h := 0; h < Slots-1; h++ {
		y := rowY(p.Timeline[h])
		xs = append(xs, float64(h), float64(h+1))
		ys = append(ys, y, y)
	}

	xTicks := make([]chart.Tick, 0, Slots)
	for h := 0; h < Slots; h++ {
		xTicks = append(xTicks, chart.Tick{Value: float64(h), Label: HourLabel(h)})
	}

	yTicks := make([]chart.Tick, 0, len(Statuses))
	for i := len(Statuses) - 1; i >= 0; i-- {
		s := Statuses[i]
		yTicks = append(yTicks, chart.Tick{Value: rowY(s), Label: s.RowLabel()})
	}

	grid := chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 1}

	graph := chart.Chart{
		Title:  p.Title(),
		Width:  ChartWidth,
		Height: ChartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(Slots - 1)},
			Ticks:          xTicks,
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(len(Statuses) - 1)},
			Ticks:          yTicks,
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "ELD Log",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlack,
					StrokeWidth: 7,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render eld chart day %d: %w", p.Day, err)
	}
	return nil
}

// rowY flips the status so Off-Duty plots at the top of the y axis.
func rowY(s DutyStatus) float64 {
	return float64(int(OnDuty) - int(s))
}
