package animation

import (
	"fmt"
	"slices"

	"voirank/internal/rankmatrix"
)

// Point is one plotted position. X is a fractional period. Gap is set when
// the period before X had no data, so the line restarts at this point.
type Point struct {
	X    float64 `json:"x"`
	Rank float64 `json:"rank"`
	Gap  bool    `json:"gap,omitempty"`
}

// Line is one key's state in a frame.
type Line struct {
	Key     string  `json:"key"`
	Trail   []Point `json:"trail"`
	Visible bool    `json:"visible"`
}

// Head returns the leading point of the line.
func (l Line) Head() (Point, bool) {
	if len(l.Trail) == 0 {
		return Point{}, false
	}
	return l.Trail[len(l.Trail)-1], true
}

// Frame is one rendered step.
type Frame struct {
	Index  int     `json:"index"`
	Period int     `json:"period"`
	Alpha  float64 `json:"alpha"`
	Lines  []Line  `json:"lines"`
}

// RankAnimator interpolates saturated ranks between adjacent periods.
type RankAnimator struct {
	periods []int
	keys    []string
	ranks   map[string][]float64
	present map[string][]bool
	steps   int
	cutoff  int
}

// NewRankAnimator prepares frames for keys over every period of r. Ranks
// worse than cutoff are saturated to cutoff+1.
func NewRankAnimator(r *rankmatrix.RankMatrix, keys []string, stepsPerPeriod, cutoff int) *RankAnimator {
	if stepsPerPeriod <= 0 {
		stepsPerPeriod = 1
	}
	a := &RankAnimator{
		periods: r.Periods(),
		keys:    slices.Clone(keys),
		ranks:   make(map[string][]float64, len(keys)),
		present: make(map[string][]bool, len(keys)),
		steps:   stepsPerPeriod,
		cutoff:  cutoff,
	}
	for _, key := range keys {
		ranks := make([]float64, len(a.periods))
		present := make([]bool, len(a.periods))
		for i, period := range a.periods {
			if rank, ok := r.Rank(period, key); ok {
				ranks[i] = float64(rankmatrix.Saturate(rank, cutoff))
				present[i] = true
			}
		}
		a.ranks[key] = ranks
		a.present[key] = present
	}
	return a
}

// FrameCount returns (periods-1)*steps+1, or 0 when there are no periods.
func (a *RankAnimator) FrameCount() int {
	if len(a.periods) == 0 {
		return 0
	}
	return (len(a.periods)-1)*a.steps + 1
}

// Frame computes frame i. A key is drawn from its first period with data up
// to the current period. When the next period also has data the head is
// interpolated toward it; otherwise the line stops at the current period.
// Periods without data break the trail; see Point.Gap.
func (a *RankAnimator) Frame(i int) (Frame, error) {
	if i < 0 || i >= a.FrameCount() {
		return Frame{}, fmt.Errorf("frame %d out of range [0,%d)", i, a.FrameCount())
	}
	return a.frame(i), nil
}

func (a *RankAnimator) frame(i int) Frame {
	idx := i / a.steps
	alpha := float64(i%a.steps) / float64(a.steps)
	frame := Frame{Index: i, Period: a.periods[idx], Alpha: alpha}
	limit := float64(a.cutoff) + 0.4

	for _, key := range a.keys {
		ranks, present := a.ranks[key], a.present[key]
		start := slices.Index(present, true)
		if start < 0 || idx < start {
			continue
		}
		line := Line{Key: key}
		for j := start; j <= idx; j++ {
			if present[j] {
				line.Trail = append(line.Trail, Point{
					X:    float64(a.periods[j]),
					Rank: ranks[j],
					Gap:  j > start && !present[j-1],
				})
			}
		}
		head, headOK := ranks[idx], present[idx]
		if idx+1 < len(a.periods) && present[idx] && present[idx+1] {
			head = ranks[idx]*(1-alpha) + ranks[idx+1]*alpha
			x := float64(a.periods[idx]) + alpha*float64(a.periods[idx+1]-a.periods[idx])
			if alpha > 0 {
				line.Trail = append(line.Trail, Point{X: x, Rank: head})
			}
		}
		line.Visible = headOK && head <= limit
		frame.Lines = append(frame.Lines, line)
	}
	return frame
}

// Frames returns every frame in order.
func (a *RankAnimator) Frames() []Frame {
	out := make([]Frame, 0, a.FrameCount())
	for i := 0; i < a.FrameCount(); i++ {
		out = append(out, a.frame(i))
	}
	return out
}

// Cast splits the animated keys into the leading group (rank within cutoff in
// the latest period, ordered by that rank) and the background group (every
// other key that was ever within cutoff, sorted).
func Cast(r *rankmatrix.RankMatrix, cutoff int) (leading, background []string) {
	latest, ok := r.LatestPeriod()
	if !ok {
		return nil, nil
	}
	for _, key := range r.Keys() {
		if rank, ok := r.Rank(latest, key); ok && rank <= cutoff {
			leading = append(leading, key)
		}
	}
	slices.SortStableFunc(leading, func(x, y string) int {
		rx, _ := r.Rank(latest, x)
		ry, _ := r.Rank(latest, y)
		return rx - ry
	})
	for _, key := range r.Keys() {
		if slices.Contains(leading, key) {
			continue
		}
		for _, period := range r.Periods() {
			if rank, ok := r.Rank(period, key); ok && rank <= cutoff {
				background = append(background, key)
				break
			}
		}
	}
	return leading, background
}
