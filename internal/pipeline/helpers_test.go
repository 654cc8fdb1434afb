package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"voirank/internal/config"
	"voirank/internal/dataset"
	"voirank/internal/pipeline"
	"voirank/internal/rankmatrix"
	"voirank/internal/services/nickname"
	"voirank/internal/share"
	"voirank/internal/testsupport"
)

const (
	yukari = "結月ゆかり"
	akane  = "琴葉茜"
	aoi    = "琴葉葵"
	natsu  = "ナツ"
)

func newConfig(t *testing.T, opts ...testsupport.ConfigOption) *config.Config {
	t.Helper()

	opts = append([]testsupport.ConfigOption{
		testsupport.WithCatalog(yukari, akane, aoi, natsu, "東北イタコ"),
		testsupport.WithYears(2020, 2022),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Analysis.HistoryCategories = []string{"game"}
	cfg.Analysis.Exclusions = nil
	return cfg
}

func newRunner(t *testing.T, cfg *config.Config, opts ...pipeline.Option) *pipeline.Runner {
	t.Helper()

	r, err := pipeline.New(cfg, opts...)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return r
}

// overallFixture covers a filtered video, an out-of-bounds year, and a
// two-character video.
func overallFixture() []dataset.Record {
	return []dataset.Record{
		testsupport.Video("sm1", 1, 100, 2020, 3, 1, yukari),
		testsupport.Video("sm2", 2, 50, 2020, 4, 1, akane),
		testsupport.Video("sm3", 1, 80, 2021, 5, 1, akane, yukari),
		testsupport.Video("sm4", 3, 70, 2019, 6, 1, aoi),
		testsupport.Video("sm5", 3, 999, 2021, 7, 1, "VOCALOID", aoi),
	}
}

func gameFixture() []dataset.Record {
	return []dataset.Record{
		testsupport.Video("sm10", 4, 40, 2022, 1, 5, natsu),
		testsupport.Video("sm11", 5, 60, 2022, 2, 5, "サマーナツコ"),
	}
}

func travelFixture() []dataset.Record {
	return []dataset.Record{
		testsupport.Video("sm20", 1, 100, 2020, 1, 10),
		testsupport.Video("sm21", 1, 300, 2022, 6, 1),
		testsupport.Video("sm22", 2, 500, 2020, 3, 1),
		testsupport.Video("sm23", 3, 50, 2021, 5, 1),
		testsupport.Video("sm24", 3, 20, 2022, 12, 1),
		testsupport.Video("sm25", 0, 1000, 2022, 8, 1),
	}
}

func readValues(t *testing.T, path string) *rankmatrix.ValueMatrix {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	m, err := rankmatrix.ReadValuesCSV(f)
	if err != nil {
		t.Fatalf("ReadValuesCSV(%s): %v", path, err)
	}
	return m
}

func mustExist(t *testing.T, paths ...string) {
	t.Helper()

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", filepath.Base(p), err)
		}
	}
}

type fakeNicknames struct {
	names map[uint64]string
	calls int
}

func (f *fakeNicknames) Lookup(_ context.Context, userID uint64) (string, bool) {
	f.calls++
	if name, ok := f.names[userID]; ok {
		return name, true
	}
	return nickname.NotFound, false
}

type fakePlatform struct {
	calls int
}

func (f *fakePlatform) Years(_ context.Context, from, to int) ([]share.PlatformYear, error) {
	f.calls++
	var out []share.PlatformYear
	for y := from; y <= to; y++ {
		out = append(out, share.PlatformYear{Year: y, Videos: 1000, Views: 100000})
	}
	return out, nil
}
