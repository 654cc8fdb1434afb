package chart

import "strings"

// Tab20 is the categorical palette used for keys without a fixed colour.
var Tab20 = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// PairColor fixes the colour of any pair key containing both names.
type PairColor struct {
	A        string
	B        string
	Color    string
	Emphasis bool
}

// DefaultPairColors highlights the long-running duos.
func DefaultPairColors() []PairColor {
	return []PairColor{
		{A: "結月ゆかり", B: "弦巻マキ", Color: "#800080", Emphasis: true},
		{A: "琴葉茜", B: "琴葉葵", Color: "#ff69b4", Emphasis: true},
		{A: "結月ゆかり", B: "紲星あかり", Color: "#ffa500", Emphasis: true},
		{A: "ずんだもん", B: "四国めたん", Color: "#32cd32", Emphasis: true},
		{A: "東北きりたん", B: "東北ずん子", Color: "#2e8b57"},
	}
}

// assignColors gives each key a palette colour by position, then applies
// fixed entity colours and pair colours. The second result marks keys drawn
// with emphasis.
func assignColors(keys []string, palette []string, fixed map[string]string, pairs []PairColor) (map[string]string, map[string]bool) {
	if len(palette) == 0 {
		palette = Tab20
	}
	colors := make(map[string]string, len(keys))
	emphasis := make(map[string]bool)
	for i, key := range keys {
		colors[key] = palette[i%len(palette)]
		if c, ok := fixed[key]; ok {
			colors[key] = c
		}
		for _, pc := range pairs {
			if strings.Contains(key, pc.A) && strings.Contains(key, pc.B) {
				colors[key] = pc.Color
				emphasis[key] = pc.Emphasis
				break
			}
		}
	}
	return colors, emphasis
}
