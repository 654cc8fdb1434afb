package genrestats_test

import (
	"testing"
	"time"

	"voirank/internal/dataset"
	"voirank/internal/genrestats"
	"voirank/internal/rankmatrix"
)

func rec(id string, year int, views int64) dataset.Record {
	return dataset.Record{ContentID: id, ViewCounter: views, StartTime: time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC)}
}

func TestMedianAndQuantile(t *testing.T) {
	cases := []struct {
		values []int64
		want   float64
	}{
		{nil, 0},
		{[]int64{5}, 5},
		{[]int64{3, 1, 2}, 2},
		{[]int64{4, 1, 3, 2}, 2.5},
	}
	for _, tc := range cases {
		if got := genrestats.Median(tc.values); got != tc.want {
			t.Fatalf("Median(%v) = %v, want %v", tc.values, got, tc.want)
		}
	}
	if got := genrestats.Quantile([]int64{1, 2, 3, 4, 5}, 0.25); got != 2 {
		t.Fatalf("Quantile 0.25 = %v, want 2", got)
	}
}

func TestYearlyRespectsBounds(t *testing.T) {
	records := []dataset.Record{rec("a", 2010, 1), rec("b", 2020, 10), rec("c", 2020, 30), rec("d", 2026, 5)}
	got := genrestats.Yearly(records, &rankmatrix.Bounds{Min: 2011, Max: 2025})
	if len(got) != 1 {
		t.Fatalf("expected one year, got %+v", got)
	}
	if got[0].Posts != 2 || got[0].TotalViews != 40 || got[0].MedianViews != 20 {
		t.Fatalf("unexpected stat %+v", got[0])
	}
}

func TestAnnualSeriesPadsToMaxYear(t *testing.T) {
	records := []dataset.Record{rec("a", 2021, 4), rec("b", 2023, 6)}
	got := genrestats.AnnualSeries(records, 2025)
	if len(got) != 5 {
		t.Fatalf("expected 2021..2025, got %+v", got)
	}
	if !got[1].Padded || got[1].Posts != 0 {
		t.Fatalf("2022 must be padded, got %+v", got[1])
	}
	if got[2].Padded || got[2].TotalViews != 6 {
		t.Fatalf("2023 must be real, got %+v", got[2])
	}
	if !got[4].Padded {
		t.Fatalf("2025 must be padded, got %+v", got[4])
	}
}

func TestDistribution(t *testing.T) {
	records := []dataset.Record{rec("a", 2017, 1), rec("b", 2018, 1), rec("c", 2018, 9)}
	got := genrestats.Distribution(records, 2018)
	if len(got) != 1 || got[0].Min != 1 || got[0].Max != 9 || got[0].Median != 5 {
		t.Fatalf("unexpected distribution %+v", got)
	}
}

func TestMostPopular(t *testing.T) {
	records := []dataset.Record{rec("a", 2020, 5), rec("b", 2020, 50), rec("c", 2022, 1), rec("d", 2022, 1)}
	got := genrestats.MostPopular(records)
	if len(got) != 2 || got[0].ContentID != "b" || got[1].ContentID != "c" {
		t.Fatalf("unexpected most popular %+v", got)
	}
}
