package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"voirank/internal/artifact"
	"voirank/internal/dataset"
	"voirank/internal/logging"
	"voirank/internal/pairing"
	"voirank/internal/rankmatrix"
)

// yearlyPanels is how many recent years get their own top-N table.
const yearlyPanels = 9

// CharactersResult summarizes one category's character analysis.
type CharactersResult struct {
	Category string             `json:"category"`
	Files    []string           `json:"files"`
	Ranking  []rankmatrix.Entry `json:"ranking"`
	Duos     []rankmatrix.Entry `json:"duos"`
	Active   []string           `json:"cooccurring"`
}

// Characters writes the per-category character analysis: the record to
// character mapping, the all-time and yearly view rankings, the
// co-occurrence matrix of characters sharing a video, and the ranking of
// two-character videos. ok is false when the category has no snapshot.
func (r *Runner) Characters(ctx context.Context, category string) (CharactersResult, bool, error) {
	result := CharactersResult{Category: category}
	records, err := r.Records(ctx, category)
	if err != nil {
		return result, false, fmt.Errorf("characters %s: %w", category, err)
	}
	if len(records) == 0 {
		return result, false, nil
	}
	records = upToYear(records, r.cfg.Analysis.MaxYear)
	ex, err := r.Extractor()
	if err != nil {
		return result, false, err
	}
	cat, err := r.Catalog()
	if err != nil {
		return result, false, err
	}
	sets := ex.ExtractAll(records)
	mentions := Explode(records, sets)
	if len(mentions) == 0 {
		r.log(ctx, category).Info("no characters found; skipping")
		return result, false, nil
	}

	dir := filepath.Join(r.cfg.Paths.OutputDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, false, fmt.Errorf("create output dir: %w", err)
	}
	write := func(name string, t *artifact.Table) error {
		path := filepath.Join(dir, category+"_"+name+".csv")
		if err := artifact.WriteTable(path, t); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		result.Files = append(result.Files, path)
		return nil
	}

	if err := write("character_mapping", mappingTable(mentions)); err != nil {
		return result, false, err
	}

	totals := make(map[string]int64)
	for _, m := range mentions {
		totals[m.Character] += m.ViewCounter
	}
	result.Ranking = rankmatrix.Ranked(totals)
	if err := write("character_ranking_overall", entryTable("character", result.Ranking, false)); err != nil {
		return result, false, err
	}

	values := rankmatrix.Aggregate(artifact.Triples(mentions), nil)
	if err := write("character_ranking_yearly", yearlyTable("character", values, r.recentYears(), r.cfg.Analysis.YearlyTopN)); err != nil {
		return result, false, err
	}

	matrix, err := pairing.Cooccurrence(cat, sets)
	if err != nil {
		return result, false, fmt.Errorf("characters %s: %w", category, err)
	}
	active := matrix.Active()
	result.Active = active.Names()
	if err := write("cooccurrence", matrixTable(active)); err != nil {
		return result, false, err
	}

	rows := EntityRows(records, sets)
	result.Duos = rankmatrix.Top(pairing.DuoTotals(rows), r.cfg.Analysis.YearlyTopN)
	if err := write("top_pairings_ranking", entryTable("pair", result.Duos, true)); err != nil {
		return result, false, err
	}
	duoValues := rankmatrix.Aggregate(pairing.DuoTriples(rows), nil)
	if err := write("top_pairings_ranking_yearly", yearlyTable("pair", duoValues, r.recentYears(), r.cfg.Analysis.YearlyTopN)); err != nil {
		return result, false, err
	}

	r.log(ctx, category).Info("character analysis written",
		logging.Int("mentions", len(mentions)),
		logging.Int("characters", len(result.Ranking)),
		logging.Int("cooccurring", len(result.Active)),
		logging.Int("files", len(result.Files)),
	)
	return result, true, nil
}

// upToYear drops records after maxYear. Undated records are kept; later
// steps ignore them.
func upToYear(records []dataset.Record, maxYear int) []dataset.Record {
	kept := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if rec.Year() <= maxYear {
			kept = append(kept, rec)
		}
	}
	return kept
}

func (r *Runner) recentYears() []int {
	maxYear := r.cfg.Analysis.MaxYear
	from := max(r.cfg.Analysis.MinYear, maxYear-yearlyPanels+1)
	years := make([]int, 0, maxYear-from+1)
	for y := from; y <= maxYear; y++ {
		years = append(years, y)
	}
	return years
}

func mappingTable(mentions []artifact.Mention) *artifact.Table {
	t := &artifact.Table{Header: []string{"contentId", "character", "viewCounter", "year"}}
	for _, m := range mentions {
		t.Append(m.ContentID, m.Character, strconv.FormatInt(m.ViewCounter, 10), strconv.Itoa(m.Year))
	}
	return t
}

func entryTable(keyColumn string, entries []rankmatrix.Entry, withRank bool) *artifact.Table {
	t := &artifact.Table{Header: []string{keyColumn, "viewCounter"}}
	if withRank {
		t.Header = []string{"rank", keyColumn, "viewCounter"}
	}
	for _, e := range entries {
		if withRank {
			t.Append(strconv.Itoa(e.Rank), e.Key, strconv.FormatInt(e.Value, 10))
			continue
		}
		t.Append(e.Key, strconv.FormatInt(e.Value, 10))
	}
	return t
}

// yearlyTable lists the top n keys of each requested year. Years without
// data produce no rows.
func yearlyTable(keyColumn string, values *rankmatrix.ValueMatrix, years []int, n int) *artifact.Table {
	t := &artifact.Table{Header: []string{"year", "rank", keyColumn, "viewCounter"}}
	for _, year := range years {
		for _, e := range rankmatrix.Top(values.Period(year), n) {
			t.Append(strconv.Itoa(year), strconv.Itoa(e.Rank), e.Key, strconv.FormatInt(e.Value, 10))
		}
	}
	return t
}

func matrixTable(m *pairing.Matrix) *artifact.Table {
	names := m.Names()
	t := &artifact.Table{Header: append([]string{""}, names...)}
	for i, name := range names {
		row := make([]string, 0, len(names)+1)
		row = append(row, name)
		for j := range names {
			row = append(row, strconv.Itoa(m.At(i, j)))
		}
		t.Append(row...)
	}
	return t
}
