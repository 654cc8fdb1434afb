package chart

import (
	"voirank/internal/rankmatrix"
)

// LabelRule selects where a bump-chart line is labelled.
type LabelRule int

const (
	// LabelVisibleSpan labels the first and last periods ranked within the
	// cutoff. A line that first becomes visible before the latest period
	// gets a left label; a right label is added when it first becomes
	// visible in the latest period or stays visible past its first period.
	LabelVisibleSpan LabelRule = iota
	// LabelDataEnds labels both ends of the line's data, saturated or not.
	LabelDataEnds
)

// BumpChart configures one rank-over-time chart.
type BumpChart struct {
	Title      string
	TopN       int
	Cutoff     int
	Colors     map[string]string
	PairColors []PairColor
	Palette    []string
	Labels     LabelRule
	LineWidth  float64
}

// Point is one marker on a series. Rank is saturated; Saturated marks ranks
// that were worse than the cutoff. Gap marks a point whose preceding period
// had no data; the line is not drawn across it.
type Point struct {
	Period    int  `json:"period"`
	Rank      int  `json:"rank"`
	Saturated bool `json:"saturated,omitempty"`
	Gap       bool `json:"gap,omitempty"`
}

// Label anchors a line name to one of its points.
type Label struct {
	Period int    `json:"period"`
	Rank   int    `json:"rank"`
	Side   string `json:"side"`
}

// Series is one drawn line. Periods without data are omitted from Points and
// the next point after them carries Gap.
type Series struct {
	Key    string  `json:"key"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Points []Point `json:"points"`
	Labels []Label `json:"labels,omitempty"`
}

// BumpData is the renderer input for a bump chart.
type BumpData struct {
	Title   string   `json:"title"`
	Cutoff  int      `json:"cutoff"`
	Periods []int    `json:"periods"`
	Series  []Series `json:"series"`
}

// Build selects the visible keys of ranks and lays out their series.
func (c BumpChart) Build(ranks *rankmatrix.RankMatrix) BumpData {
	keys := ranks.Select(c.TopN)
	colors, emphasis := assignColors(keys, c.Palette, c.Colors, c.PairColors)
	width := c.LineWidth
	if width <= 0 {
		width = 4
	}

	data := BumpData{Title: c.Title, Cutoff: c.Cutoff, Periods: ranks.Periods()}
	maxPeriod, _ := ranks.LatestPeriod()
	for _, key := range keys {
		s := Series{Key: key, Color: colors[key], Width: width}
		if emphasis[key] {
			s.Width = width * 1.5
		}
		missed := false
		for _, period := range data.Periods {
			rank, ok := ranks.Rank(period, key)
			if !ok {
				missed = len(s.Points) > 0
				continue
			}
			s.Points = append(s.Points, Point{
				Period:    period,
				Rank:      rankmatrix.Saturate(rank, c.Cutoff),
				Saturated: rank > c.Cutoff,
				Gap:       missed,
			})
			missed = false
		}
		s.Labels = c.labels(s.Points, maxPeriod)
		data.Series = append(data.Series, s)
	}
	return data
}

func (c BumpChart) labels(points []Point, maxPeriod int) []Label {
	var candidates []Point
	for _, p := range points {
		if c.Labels == LabelDataEnds || !p.Saturated {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	first, last := candidates[0], candidates[len(candidates)-1]
	if c.Labels == LabelDataEnds {
		return []Label{
			{Period: first.Period, Rank: first.Rank, Side: "left"},
			{Period: last.Period, Rank: last.Rank, Side: "right"},
		}
	}
	var out []Label
	if first.Period < maxPeriod {
		out = append(out, Label{Period: first.Period, Rank: first.Rank, Side: "left"})
	}
	if first.Period == maxPeriod || last.Period > first.Period {
		out = append(out, Label{Period: last.Period, Rank: last.Rank, Side: "right"})
	}
	return out
}
