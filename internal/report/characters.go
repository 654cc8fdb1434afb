package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"voirank/internal/artifact"
	"voirank/internal/rankmatrix"
)

// Source is one category's mentions, already bounded to the report's
// maximum year.
type Source struct {
	Category string
	Label    string
	Mentions []artifact.Mention
}

// GenreRank is a character's latest-year rank within one category.
type GenreRank struct {
	Label string
	Rank  int
}

// CharacterStats is one report row. A zero rank means the character had no
// views in that scope.
type CharacterStats struct {
	Name        string
	LatestViews int64
	LatestRank  int
	TotalViews  int64
	TotalRank   int
	GenreRanks  []GenreRank
}

// CharacterReport collects statistics for a fixed list of characters.
type CharacterReport struct {
	LatestYear int
	Overall    string
	Rows       []CharacterStats
	LatestTop  []rankmatrix.Entry
}

func totals(mentions []artifact.Mention, year int) map[string]int64 {
	out := make(map[string]int64)
	for _, m := range mentions {
		if year == 0 || m.Year == year {
			out[m.Character] += m.ViewCounter
		}
	}
	return out
}

// BuildCharacterReport ranks characters by views in the latest year and
// across all years of the overall category, and by latest-year views in
// every source. topN bounds LatestTop.
func BuildCharacterReport(characters []string, overall string, sources []Source, latestYear, topN int) CharacterReport {
	rep := CharacterReport{LatestYear: latestYear, Overall: overall}
	rows := make(map[string]*CharacterStats, len(characters))
	for _, name := range characters {
		rows[name] = &CharacterStats{Name: name}
	}

	for _, src := range sources {
		latest := totals(src.Mentions, latestYear)
		latestRanks := rankmatrix.CompetitionRank(latest)
		if src.Category == overall {
			all := totals(src.Mentions, 0)
			allRanks := rankmatrix.CompetitionRank(all)
			rep.LatestTop = rankmatrix.Top(latest, topN)
			for _, row := range rows {
				row.TotalViews = all[row.Name]
				row.TotalRank = allRanks[row.Name]
				row.LatestViews = latest[row.Name]
				row.LatestRank = latestRanks[row.Name]
			}
		}
		for _, row := range rows {
			if rank, ok := latestRanks[row.Name]; ok {
				row.GenreRanks = append(row.GenreRanks, GenreRank{Label: src.Label, Rank: rank})
			}
		}
	}

	for _, name := range characters {
		row := rows[name]
		slices.SortStableFunc(row.GenreRanks, func(a, b GenreRank) int { return a.Rank - b.Rank })
		rep.Rows = append(rep.Rows, *row)
	}
	return rep
}

func rankCell(rank int) string {
	if rank <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d位", rank)
}

// WriteMarkdown renders the report as a Markdown table.
func (r CharacterReport) WriteMarkdown(w io.Writer) error {
	y := r.LatestYear
	var b strings.Builder
	fmt.Fprintf(&b, "# キャラクター別統計レポート (%d年ベース)\n\n", y)
	fmt.Fprintf(&b, "このレポートは、`%s` を含む各ジャンルのデータを元に、主要キャラクターの再生数と%d年のジャンル別順位をまとめたものです。\n\n", r.Overall, y)
	fmt.Fprintf(&b, "| キャラクター | %d年再生数 | %d年総合順位 | 通年再生数 | 通年総合順位 | 各ジャンルでの順位 (高い方から) |\n", y, y)
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range r.Rows {
		genres := make([]string, 0, len(row.GenreRanks))
		for _, g := range row.GenreRanks {
			genres = append(genres, fmt.Sprintf("%s:%d位", g.Label, g.Rank))
		}
		fmt.Fprintf(&b, "| **%s** | %s | %s | %s | %s | %s |\n",
			row.Name,
			Grouped(row.LatestViews), rankCell(row.LatestRank),
			Grouped(row.TotalViews), rankCell(row.TotalRank),
			strings.Join(genres, ", "))
	}
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "※再生数は%d年12月31日までの集計値です。\n", y)
	b.WriteString("※「総合順位」は全キャラクター中での再生数順位です。\n")
	_, err := io.WriteString(w, b.String())
	return err
}
