package chart

import (
	"voirank/internal/animation"
	"voirank/internal/rankmatrix"
)

// BarRace configures a growing cumulative bar chart for one key.
type BarRace struct {
	Title           string
	Color           string
	FramesPerPeriod int
	HoldFrames      int
}

// BarRaceData is the renderer input for a bar race.
type BarRaceData struct {
	Title   string      `json:"title"`
	Color   string      `json:"color"`
	Periods []int       `json:"periods"`
	Totals  []int64     `json:"totals"`
	Frames  [][]float64 `json:"frames"`
}

// Build accumulates the padded series and computes its frames.
func (c BarRace) Build(points []rankmatrix.SeriesPoint) BarRaceData {
	data := BarRaceData{Title: c.Title, Color: c.Color}
	for _, p := range points {
		data.Periods = append(data.Periods, p.Period)
	}
	data.Totals = rankmatrix.Cumulative(points)
	data.Frames = animation.CumulativeFrames(data.Totals, c.FramesPerPeriod, c.HoldFrames)
	return data
}
