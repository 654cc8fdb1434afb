package extract_test

import (
	"reflect"
	"testing"

	"voirank/internal/catalog"
	"voirank/internal/config"
	"voirank/internal/dataset"
	"voirank/internal/extract"
)

func testCatalog() *catalog.Catalog {
	names := []string{"結月ゆかり", "琴葉茜", "琴葉葵", "ナツ", "RIA", "ずんだもん"}
	return catalog.New(names, config.DefaultExactMatchNames)
}

func TestExtract(t *testing.T) {
	c := testCatalog()
	cases := []struct {
		name string
		tags []string
		want []string
	}{
		{"nil tags", nil, nil},
		{"empty tags", []string{}, nil},
		{"exact name as whole tag", []string{"ナツ", "ゲーム"}, []string{"ナツ"}},
		{"exact name inside longer tag", []string{"サマーナツコ"}, nil},
		{"exact name in tag with spaces", []string{"ナツ 実況"}, []string{"ナツ"}},
		{"substring name inside longer tag", []string{"結月ゆかり誕生祭"}, []string{"結月ゆかり"}},
		{"exact name case sensitive", []string{"ria"}, nil},
		{"catalog order", []string{"琴葉葵", "結月ゆかり", "琴葉茜"}, []string{"結月ゆかり", "琴葉茜", "琴葉葵"}},
		{"substring across tags", []string{"ずんだ", "もん"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extract.Extract(tc.tags, c)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract(%v) = %v, want %v", tc.tags, got, tc.want)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	c := testCatalog()
	tags := []string{"琴葉茜", "RIA", "VOICEROID実況"}
	first := extract.Extract(tags, c)
	second := extract.Extract(tags, c)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %v vs %v", first, second)
	}
}

func TestExtractorMemoizesByJoinedTags(t *testing.T) {
	c := testCatalog()
	e := extract.NewExtractor(c)
	records := []dataset.Record{
		{ContentID: "a", Tags: []string{"琴葉茜", "琴葉葵"}},
		{ContentID: "b", Tags: []string{"琴葉茜", "琴葉葵"}},
		{ContentID: "c", Tags: []string{"ナツ"}},
		{ContentID: "d"},
	}
	sets := e.ExtractAll(records)
	if len(sets) != len(records) {
		t.Fatalf("expected %d sets, got %d", len(records), len(sets))
	}
	if !reflect.DeepEqual(sets[0], []string{"琴葉茜", "琴葉葵"}) || !reflect.DeepEqual(sets[1], sets[0]) {
		t.Fatalf("unexpected sets %v", sets)
	}
	if sets[3] != nil {
		t.Fatalf("expected nil set for untagged record, got %v", sets[3])
	}
	stats := e.Stats()
	if stats.Distinct != 2 || stats.Served != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	for i, r := range records {
		if !reflect.DeepEqual(sets[i], extract.Extract(r.Tags, c)) {
			t.Fatalf("memoized result differs for %s", r.ContentID)
		}
	}
}
