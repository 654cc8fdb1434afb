package pairing_test

import (
	"errors"
	"reflect"
	"testing"

	"voirank/internal/catalog"
	"voirank/internal/pairing"
	"voirank/internal/rankmatrix"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	if got := pairing.PairKey("B", "A"); got != "A & B" {
		t.Fatalf("PairKey(B, A) = %q", got)
	}
	if pairing.PairKey("A", "B") != pairing.PairKey("B", "A") {
		t.Fatal("pair keys must match regardless of order")
	}

	forward := pairing.ExpandToPairs([]pairing.EntityRow{{Period: 2020, Entities: []string{"A", "B"}, Value: 1}})
	backward := pairing.ExpandToPairs([]pairing.EntityRow{{Period: 2020, Entities: []string{"B", "A"}, Value: 1}})
	if !reflect.DeepEqual(forward, backward) {
		t.Fatalf("expansions differ: %v vs %v", forward, backward)
	}
	if forward[0].Key != "A & B" {
		t.Fatalf("unexpected key %q", forward[0].Key)
	}
}

func TestExpandToPairsCreditsFullValue(t *testing.T) {
	rows := []pairing.EntityRow{
		{Period: 2021, Entities: []string{"C", "A", "B"}, Value: 90},
		{Period: 2021, Entities: []string{"A"}, Value: 1000},
		{Period: 2021, Entities: nil, Value: 5},
		{Period: 2021, Entities: []string{"A", "A"}, Value: 7},
	}
	got := pairing.ExpandToPairs(rows)
	want := []rankmatrix.Triple{
		{Period: 2021, Key: "A & B", Value: 90},
		{Period: 2021, Key: "A & C", Value: 90},
		{Period: 2021, Key: "B & C", Value: 90},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandToPairs = %v, want %v", got, want)
	}
}

func TestExpandToSinglesFeedsRankScenario(t *testing.T) {
	rows := []pairing.EntityRow{
		{Period: 2020, Entities: []string{"A"}, Value: 10},
		{Period: 2021, Entities: []string{"A", "B"}, Value: 20},
	}
	_, ranks := rankmatrix.Build(pairing.ExpandToSingles(rows), nil)
	if _, ok := ranks.Rank(2020, "B"); ok {
		t.Fatal("B must be no-data in 2020")
	}
	for _, key := range []string{"A", "B"} {
		if r, _ := ranks.Rank(2021, key); r != 1 {
			t.Fatalf("rank 2021/%s = %d, want 1", key, r)
		}
	}
}

func TestDuoTotalsOnlyCountsTwoEntityRows(t *testing.T) {
	rows := []pairing.EntityRow{
		{Period: 2020, Entities: []string{"B", "A"}, Value: 10},
		{Period: 2021, Entities: []string{"A", "B"}, Value: 5},
		{Period: 2021, Entities: []string{"A", "B", "C"}, Value: 100},
		{Period: 2021, Entities: []string{"C"}, Value: 100},
	}
	got := pairing.DuoTotals(rows)
	want := map[string]int64{"A & B": 15}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DuoTotals = %v, want %v", got, want)
	}
}

func TestCooccurrenceCountsSymmetric(t *testing.T) {
	c := catalog.New([]string{"A", "B", "C", "D"}, nil)
	m, err := pairing.Cooccurrence(c, [][]string{{"A", "B"}, {"B", "A", "C"}, {"D"}})
	if err != nil {
		t.Fatalf("Cooccurrence failed: %v", err)
	}
	if m.Count("A", "B") != 2 || m.Count("B", "A") != 2 {
		t.Fatalf("A/B count = %d/%d, want 2", m.Count("A", "B"), m.Count("B", "A"))
	}
	if m.Count("A", "C") != 1 || m.Count("A", "A") != 0 {
		t.Fatalf("unexpected counts A/C=%d A/A=%d", m.Count("A", "C"), m.Count("A", "A"))
	}
	active := m.Active()
	if got := active.Names(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("Active names = %v", got)
	}
}

func TestCooccurrenceRejectsUnknownEntity(t *testing.T) {
	c := catalog.New([]string{"A"}, nil)
	_, err := pairing.Cooccurrence(c, [][]string{{"A", "Z"}})
	if !errors.Is(err, pairing.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}
