package animation

// CumulativeFrames returns bar heights for a growing cumulative bar chart.
// During period i the i-th bar grows linearly from the previous cumulative
// value to its own; later bars stay at zero. holdFrames extra frames repeat
// the final state.
func CumulativeFrames(values []int64, framesPerPeriod, holdFrames int) [][]float64 {
	if len(values) == 0 || framesPerPeriod <= 0 {
		return nil
	}
	if holdFrames < 0 {
		holdFrames = 0
	}
	total := framesPerPeriod * len(values)
	out := make([][]float64, 0, total+holdFrames)
	for frame := 0; frame < total+holdFrames; frame++ {
		bars := make([]float64, len(values))
		if frame >= total {
			for i, v := range values {
				bars[i] = float64(v)
			}
			out = append(out, bars)
			continue
		}
		current := frame / framesPerPeriod
		progress := float64(frame%framesPerPeriod) / float64(framesPerPeriod)
		for i := 0; i < current; i++ {
			bars[i] = float64(values[i])
		}
		var prev float64
		if current > 0 {
			prev = float64(values[current-1])
		}
		bars[current] = prev + (float64(values[current])-prev)*progress
		out = append(out, bars)
	}
	return out
}
