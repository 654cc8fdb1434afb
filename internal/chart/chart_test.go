package chart_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"voirank/internal/chart"
	"voirank/internal/rankmatrix"
)

func ranksFrom(t *testing.T, rows []rankmatrix.Triple) *rankmatrix.RankMatrix {
	t.Helper()
	_, ranks := rankmatrix.Build(rows, nil)
	return ranks
}

func seriesFor(t *testing.T, data chart.BumpData, key string) chart.Series {
	t.Helper()
	for _, s := range data.Series {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("no series for %s", key)
	return chart.Series{}
}

func TestBumpChartSelectsAndSaturates(t *testing.T) {
	ranks := ranksFrom(t, []rankmatrix.Triple{
		{Period: 2023, Key: "Z", Value: 100},
		{Period: 2023, Key: "W", Value: 50},
		{Period: 2023, Key: "V", Value: 10},
		{Period: 2024, Key: "Z", Value: 5},
		{Period: 2024, Key: "W", Value: 90},
		{Period: 2024, Key: "V", Value: 40},
	})
	cfg := chart.BumpChart{Title: "t", TopN: 1, Cutoff: 2, Colors: map[string]string{"Z": "#000000"}}
	data := cfg.Build(ranks)
	if len(data.Series) != 2 {
		t.Fatalf("expected W and Z, got %+v", data.Series)
	}
	z := seriesFor(t, data, "Z")
	if z.Color != "#000000" {
		t.Fatalf("fixed colour not applied: %s", z.Color)
	}
	if len(z.Points) != 2 || z.Points[1].Rank != 3 || !z.Points[1].Saturated {
		t.Fatalf("expected saturated 2024 point, got %+v", z.Points)
	}
}

func TestBumpChartMarksMissingPeriod(t *testing.T) {
	ranks := ranksFrom(t, []rankmatrix.Triple{
		{Period: 2018, Key: "A", Value: 10},
		{Period: 2019, Key: "B", Value: 10},
		{Period: 2020, Key: "A", Value: 10},
	})
	data := chart.BumpChart{TopN: 5, Cutoff: 10}.Build(ranks)

	a := seriesFor(t, data, "A")
	want := []chart.Point{
		{Period: 2018, Rank: 1},
		{Period: 2020, Rank: 1, Gap: true},
	}
	if !reflect.DeepEqual(a.Points, want) {
		t.Fatalf("A points = %+v, want %+v", a.Points, want)
	}
	b := seriesFor(t, data, "B")
	if len(b.Points) != 1 || b.Points[0].Gap {
		t.Fatalf("a leading missing period is not a gap, got %+v", b.Points)
	}
}

func TestBumpChartVisibleSpanLabels(t *testing.T) {
	ranks := ranksFrom(t, []rankmatrix.Triple{
		{Period: 2023, Key: "A", Value: 100},
		{Period: 2024, Key: "A", Value: 100},
		{Period: 2024, Key: "B", Value: 50},
		{Period: 2023, Key: "C", Value: 1},
		{Period: 2023, Key: "D", Value: 2},
		{Period: 2024, Key: "C", Value: 10},
	})
	cfg := chart.BumpChart{TopN: 10, Cutoff: 1}
	data := cfg.Build(ranks)

	a := seriesFor(t, data, "A")
	if len(a.Labels) != 2 || a.Labels[0].Side != "left" || a.Labels[1].Side != "right" {
		t.Fatalf("A labels = %+v", a.Labels)
	}
	b := seriesFor(t, data, "B")
	if len(b.Labels) != 0 {
		t.Fatalf("B is never within cutoff, labels = %+v", b.Labels)
	}

	late := ranksFrom(t, []rankmatrix.Triple{
		{Period: 2023, Key: "X", Value: 100},
		{Period: 2024, Key: "Y", Value: 100},
	})
	y := seriesFor(t, cfg.Build(late), "Y")
	if len(y.Labels) != 1 || y.Labels[0].Side != "right" || y.Labels[0].Period != 2024 {
		t.Fatalf("latest-period newcomer labels = %+v", y.Labels)
	}
	x := seriesFor(t, cfg.Build(late), "X")
	if len(x.Labels) != 1 || x.Labels[0].Side != "left" {
		t.Fatalf("single early point labels = %+v", x.Labels)
	}
}

func TestBumpChartPairColorsAndDataEnds(t *testing.T) {
	ranks := ranksFrom(t, []rankmatrix.Triple{
		{Period: 2023, Key: "琴葉茜 & 琴葉葵", Value: 100},
		{Period: 2024, Key: "琴葉茜 & 琴葉葵", Value: 1},
		{Period: 2024, Key: "A & B", Value: 50},
	})
	cfg := chart.BumpChart{TopN: 1, Cutoff: 0, PairColors: chart.DefaultPairColors(), Labels: chart.LabelDataEnds}
	data := cfg.Build(ranks)
	s := seriesFor(t, data, "琴葉茜 & 琴葉葵")
	if s.Color != "#ff69b4" || s.Width != 6 {
		t.Fatalf("pair colour/width not applied: %+v", s)
	}
	if len(s.Labels) != 2 {
		t.Fatalf("expected labels at both data ends, got %+v", s.Labels)
	}
}

func TestRankAnimationBuild(t *testing.T) {
	ranks := ranksFrom(t, []rankmatrix.Triple{
		{Period: 2020, Key: "A", Value: 100},
		{Period: 2020, Key: "B", Value: 50},
		{Period: 2021, Key: "B", Value: 60},
		{Period: 2021, Key: "A", Value: 10},
	})
	cfg := chart.RankAnimation{TitleFormat: "順位 (%d年)", Cutoff: 1, StepsPerPeriod: 2, Icons: map[string]string{"B": "b.png"}}
	data := cfg.Build(ranks)
	if len(data.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(data.Frames))
	}
	if data.Frames[0].Title != "順位 (2020年)" {
		t.Fatalf("unexpected title %q", data.Frames[0].Title)
	}
	if len(data.Actors) != 2 || data.Actors[0].Key != "A" || !data.Actors[0].Background {
		t.Fatalf("background actors must come first: %+v", data.Actors)
	}
	if data.Actors[1].Icon != "b.png" {
		t.Fatalf("icon not attached: %+v", data.Actors[1])
	}
}

func TestBarRaceBuild(t *testing.T) {
	points := rankmatrix.PadSeries(map[int]int64{2020: 10, 2022: 5}, rankmatrix.Bounds{Min: 2020, Max: 2022})
	data := chart.BarRace{FramesPerPeriod: 2, HoldFrames: 1}.Build(points)
	if len(data.Totals) != 3 || data.Totals[2] != 15 {
		t.Fatalf("totals = %v", data.Totals)
	}
	if len(data.Frames) != 7 {
		t.Fatalf("expected 7 frames, got %d", len(data.Frames))
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "bump_chart_overall.json")
	if err := chart.WriteFile(path, chart.BumpData{Title: "ボイロ"}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded chart.BumpData
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Title != "ボイロ" {
		t.Fatalf("title = %q", decoded.Title)
	}
}
