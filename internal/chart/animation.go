package chart

import (
	"fmt"
	"slices"

	"voirank/internal/animation"
	"voirank/internal/rankmatrix"
)

// RankAnimation configures the animated rank chart.
type RankAnimation struct {
	TitleFormat    string
	Cutoff         int
	StepsPerPeriod int
	Colors         map[string]string
	Icons          map[string]string
	Palette        []string
}

// Actor is one animated key with its presentation attributes.
type Actor struct {
	Key        string `json:"key"`
	Color      string `json:"color"`
	Icon       string `json:"icon,omitempty"`
	Background bool   `json:"background,omitempty"`
}

// AnimationFrame pairs a title with the computed line positions.
type AnimationFrame struct {
	Title string `json:"title"`
	animation.Frame
}

// AnimationData is the renderer input for the rank animation.
type AnimationData struct {
	Cutoff  int              `json:"cutoff"`
	Periods []int            `json:"periods"`
	Actors  []Actor          `json:"actors"`
	Frames  []AnimationFrame `json:"frames"`
}

// Build casts the leading and background keys and computes every frame.
// Background keys are listed first so the renderer draws them underneath.
func (c RankAnimation) Build(ranks *rankmatrix.RankMatrix) AnimationData {
	leading, background := animation.Cast(ranks, c.Cutoff)
	keys := append(append([]string(nil), leading...), background...)
	colors, _ := assignColors(keys, c.Palette, c.Colors, nil)

	data := AnimationData{Cutoff: c.Cutoff, Periods: ranks.Periods()}
	ordered := append(append([]string(nil), background...), leading...)
	for _, key := range ordered {
		data.Actors = append(data.Actors, Actor{
			Key:        key,
			Color:      colors[key],
			Icon:       c.Icons[key],
			Background: !slices.Contains(leading, key),
		})
	}

	animator := animation.NewRankAnimator(ranks, ordered, c.StepsPerPeriod, c.Cutoff)
	format := c.TitleFormat
	if format == "" {
		format = "%d"
	}
	for _, f := range animator.Frames() {
		data.Frames = append(data.Frames, AnimationFrame{Title: fmt.Sprintf(format, f.Period), Frame: f})
	}
	return data
}
