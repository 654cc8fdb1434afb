package artifact_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"voirank/internal/artifact"
	"voirank/internal/fileutil"
	"voirank/internal/rankmatrix"
)

func TestMentionsRoundTrip(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	mentions := []artifact.Mention{
		{Year: 2024, Character: "結月ゆかり", ViewCounter: 1200, ContentID: "sm1", StartTime: time.Date(2024, 1, 2, 3, 4, 5, 0, jst)},
		{Year: 2025, Character: "ずんだもん", ViewCounter: 30, ContentID: "sm2"},
	}
	path := artifact.MentionCachePath(t.TempDir(), "game")
	if filepath.Base(path) != "game_processed.csv" {
		t.Fatalf("unexpected cache name %s", path)
	}
	if err := artifact.WriteMentions(path, mentions); err != nil {
		t.Fatalf("WriteMentions failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(raw), fileutil.UTF8BOM+"year,character,viewCounter,contentId,startTime\n") {
		t.Fatalf("unexpected header %q", string(raw[:60]))
	}

	got, err := artifact.ReadMentions(path)
	if err != nil {
		t.Fatalf("ReadMentions failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 mentions, got %d", len(got))
	}
	if got[0].Character != "結月ゆかり" || got[0].ViewCounter != 1200 || !got[0].StartTime.Equal(mentions[0].StartTime) {
		t.Fatalf("unexpected first mention %+v", got[0])
	}
	if !got[1].StartTime.IsZero() {
		t.Fatalf("empty startTime must decode as zero, got %v", got[1].StartTime)
	}
}

func TestDecodeMentionsAcceptsLegacyLayout(t *testing.T) {
	input := fileutil.UTF8BOM + "year,character,viewCounter,contentId,startTime\n" +
		"2019,琴葉茜,15.0,sm9,2019-05-01 21:00:00+09:00\n"
	got, err := artifact.DecodeMentions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeMentions failed: %v", err)
	}
	if len(got) != 1 || got[0].ViewCounter != 15 || got[0].StartTime.Year() != 2019 {
		t.Fatalf("unexpected mentions %+v", got)
	}
}

func TestDecodeMentionsRequiresColumns(t *testing.T) {
	if _, err := artifact.DecodeMentions(strings.NewReader("year,viewCounter\n2020,1\n")); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestReadMentionsMissingFile(t *testing.T) {
	_, err := artifact.ReadMentions(filepath.Join(t.TempDir(), "none.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWriteMatrices(t *testing.T) {
	dir := t.TempDir()
	values, ranks := rankmatrix.Build(artifact.Triples([]artifact.Mention{
		{Year: 2020, Character: "A", ViewCounter: 10},
		{Year: 2021, Character: "B", ViewCounter: 5},
	}), nil)
	paths, err := artifact.WriteMatrices(dir, "overall_views", values, ranks)
	if err != nil {
		t.Fatalf("WriteMatrices failed: %v", err)
	}
	if filepath.Base(paths.Values) != "overall_views_race.csv" || filepath.Base(paths.Ranks) != "overall_views_rank.csv" {
		t.Fatalf("unexpected paths %+v", paths)
	}
	raw, err := os.ReadFile(paths.Ranks)
	if err != nil {
		t.Fatalf("read ranks: %v", err)
	}
	if !strings.Contains(string(raw), "2020,1,\n2021,,1\n") {
		t.Fatalf("unexpected rank csv %q", raw)
	}
}

func TestTableEncode(t *testing.T) {
	tbl := &artifact.Table{Header: []string{"year", "count"}}
	tbl.Append("2020", "3")
	var buf bytes.Buffer
	if err := tbl.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if buf.String() != fileutil.UTF8BOM+"year,count\n2020,3\n" {
		t.Fatalf("unexpected table %q", buf.String())
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", ".voirank.lock")
	first, err := artifact.AcquireLock(path)
	if err != nil {
		t.Fatalf("first lock failed: %v", err)
	}
	defer first.Release()

	if _, err := artifact.AcquireLock(path); !errors.Is(err, artifact.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	second, err := artifact.AcquireLock(path)
	if err != nil {
		t.Fatalf("relock failed: %v", err)
	}
	_ = second.Release()
}
