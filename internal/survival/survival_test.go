package survival_test

import (
	"reflect"
	"testing"
	"time"

	"voirank/internal/dataset"
	"voirank/internal/survival"
)

var jst = time.FixedZone("JST", 9*3600)

func post(user uint64, year int, month time.Month, day int, views int64) dataset.Record {
	return dataset.Record{UserID: user, ViewCounter: views, StartTime: time.Date(year, month, day, 12, 0, 0, 0, jst)}
}

// fixture: latest post is 2025-06-01, so the one-year cutoff is 2024-06-01.
func fixture() []dataset.Record {
	return []dataset.Record{
		post(1, 2015, 1, 1, 10), post(1, 2025, 6, 1, 20), // active, debut 2015
		post(2, 2015, 3, 1, 5), post(2, 2017, 3, 10, 5), // retired after 2 years
		post(3, 2020, 1, 1, 1), post(3, 2020, 2, 1, 1), // retired after 0 years
		post(4, 2020, 5, 1, 7), post(4, 2024, 7, 1, 7), // active, debut 2020
		post(0, 2010, 1, 1, 999), // unknown uploader
	}
}

func TestUploadersSkipsUnknown(t *testing.T) {
	ups := survival.Uploaders(fixture())
	if len(ups) != 4 {
		t.Fatalf("expected 4 uploaders, got %d", len(ups))
	}
	if ups[0].UserID != 1 || ups[0].Posts != 2 || ups[0].Views != 30 {
		t.Fatalf("unexpected first uploader %+v", ups[0])
	}
	ref, ok := survival.NewReference(ups, 1)
	if !ok {
		t.Fatal("expected a reference")
	}
	if !ref.Now.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, jst)) {
		t.Fatalf("reference now = %v", ref.Now)
	}
}

func TestNewcomersFillsGaps(t *testing.T) {
	got := survival.Newcomers(survival.Uploaders(fixture()))
	if len(got) != 6 {
		t.Fatalf("expected 2015..2020, got %v", got)
	}
	if got[0] != (survival.YearCount{Year: 2015, Count: 2}) || got[1].Count != 0 || got[5].Count != 2 {
		t.Fatalf("unexpected newcomers %v", got)
	}
}

func TestContinuation(t *testing.T) {
	got := survival.Continuation(survival.Uploaders(fixture()), 1, 0)
	want := []survival.Cohort{
		{Year: 2015, Debuts: 2, Active: 1, Rate: 50},
		{Year: 2020, Debuts: 2, Active: 1, Rate: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Continuation = %+v, want %+v", got, want)
	}
	limited := survival.Continuation(survival.Uploaders(fixture()), 1, 3)
	if len(limited) != 1 || limited[0].Year != 2020 {
		t.Fatalf("lookback 3 should keep only 2017..2020 cohorts, got %+v", limited)
	}
}

func TestLifespanAndCurve(t *testing.T) {
	l := survival.MeasureLifespan(survival.Uploaders(fixture()), 1)
	if l.Total != 4 || l.Retired != 2 {
		t.Fatalf("unexpected totals %+v", l)
	}
	if len(l.Buckets) != 3 {
		t.Fatalf("expected buckets 0..2, got %+v", l.Buckets)
	}
	if l.Buckets[0].Count != 1 || l.Buckets[1].Count != 0 || l.Buckets[2].Count != 1 {
		t.Fatalf("unexpected counts %+v", l.Buckets)
	}
	if l.Buckets[0].CumulativePct != 50 || l.Buckets[2].SurvivalPct != 0 {
		t.Fatalf("unexpected percentages %+v", l.Buckets)
	}
	curve := l.Curve()
	want := []survival.CurvePoint{{Years: 0, Rate: 100}, {Years: 1, Rate: 50}, {Years: 2, Rate: 50}, {Years: 3, Rate: 0}}
	if !reflect.DeepEqual(curve, want) {
		t.Fatalf("Curve = %v, want %v", curve, want)
	}
}

func TestEmptyInputs(t *testing.T) {
	if got := survival.Continuation(nil, 1, 10); got != nil {
		t.Fatalf("expected nil continuation, got %v", got)
	}
	if l := survival.MeasureLifespan(nil, 1); l.Retired != 0 || l.Curve() != nil {
		t.Fatalf("expected empty lifespan, got %+v", l)
	}
	if survival.Rate(3, 0) != 0 {
		t.Fatal("zero denominator must yield 0")
	}
}

func TestLongestActive(t *testing.T) {
	got := survival.LongestActive(survival.Uploaders(fixture()), 1, 1)
	if len(got) != 1 || got[0].UserID != 1 {
		t.Fatalf("expected uploader 1, got %+v", got)
	}
	all := survival.LongestActive(survival.Uploaders(fixture()), 1, 0)
	if len(all) != 2 || all[1].UserID != 4 {
		t.Fatalf("expected uploaders 1 and 4, got %+v", all)
	}
}
