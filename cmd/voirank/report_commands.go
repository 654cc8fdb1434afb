package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"voirank/internal/pipeline"
	"voirank/internal/report"
)

// Category sets compared by default. Fishing has too few uploaders for a
// meaningful survival curve.
var (
	defaultSurvivalCategories = []string{"software_talk", "game", "theater", "explanation", "onboard", "travel", "kitchen"}
	defaultGenreCategories    = []string{"onboard", "game", "kitchen", "explanation", "theater", "software_talk", "travel", "fishing"}
)

const rankingPreview = 10

func newReportCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newHistoryCommand(ctx),
		newPairsCommand(ctx),
		newCharactersCommand(ctx),
		newAnalyzeCommand(ctx),
		newSurvivalCommand(ctx),
		newGenresCommand(ctx),
		newShareCommand(ctx),
		newActiveUsersCommand(ctx),
		newStatsCommand(ctx),
		newAnimateCommand(ctx),
		newSeriesCommand(ctx),
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Rank characters by yearly views overall and per genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				result, err := r.History(c)
				if err != nil {
					return 0, err
				}
				if ctx.jsonOutput() {
					return len(result.Files()), writeJSON(cmd, result)
				}
				printChartOutputs(cmd, result.Outputs)
				return len(result.Files()), nil
			})
		},
	}
}

func newPairsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs [category]",
		Short: "Rank character pairs by yearly views",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				category := categoryArg(args, r.Config().Analysis.PairCategory)
				out, ok, err := r.Pairs(c, category)
				if err != nil {
					return 0, err
				}
				if !ok {
					skipped(cmd, "pair", category)
					return 0, nil
				}
				if ctx.jsonOutput() {
					return len(out.Files()), writeJSON(cmd, out)
				}
				printChartOutputs(cmd, []pipeline.ChartOutput{out})
				return len(out.Files()), nil
			})
		},
	}
}

func printChartOutputs(cmd *cobra.Command, outputs []pipeline.ChartOutput) {
	rows := make([][]string, 0, len(outputs))
	for _, o := range outputs {
		span := "-"
		if n := len(o.Periods); n > 0 {
			span = fmt.Sprintf("%d-%d", o.Periods[0], o.Periods[n-1])
		}
		rows = append(rows, []string{o.Name, span, strconv.Itoa(len(o.Visible)), o.Chart})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Ranking", "Years", "Lines", "Chart"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}

func newCharactersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "characters [category...]",
		Short: "Write character rankings and co-occurrence tables per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				categories := args
				if len(categories) == 0 {
					categories = r.Config().CategoryNames()
				}
				var results []pipeline.CharactersResult
				files := 0
				for _, category := range categories {
					result, ok, err := r.Characters(c, category)
					if err != nil {
						return files, err
					}
					if !ok {
						if !ctx.jsonOutput() {
							skipped(cmd, "character", category)
						}
						continue
					}
					files += len(result.Files)
					results = append(results, result)
				}
				if ctx.jsonOutput() {
					return files, writeJSON(cmd, results)
				}
				out := cmd.OutOrStdout()
				for _, result := range results {
					fmt.Fprintf(out, "%s (%s)\n", r.Config().CategoryLabel(result.Category), result.Category)
					fmt.Fprintln(out, renderEntries("Character", result.Ranking, rankingPreview))
					if len(result.Duos) > 0 {
						fmt.Fprintln(out, renderEntries("Pair", result.Duos, rankingPreview))
					}
				}
				return files, nil
			})
		},
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [category...]",
		Short: "Write uploader activity, continuation, and lifespan reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				categories := args
				if len(categories) == 0 {
					categories = r.Config().CategoryNames()
				}
				var results []pipeline.AnalyzeResult
				files := 0
				for _, category := range categories {
					result, ok, err := r.Analyze(c, category)
					if err != nil {
						return files, err
					}
					if !ok {
						if !ctx.jsonOutput() {
							skipped(cmd, "uploader", category)
						}
						continue
					}
					files += len(result.Files)
					results = append(results, result)
				}
				if ctx.jsonOutput() {
					return files, writeJSON(cmd, results)
				}
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					latest := "-"
					if n := len(result.Continuation); n > 0 {
						latest = report.Percent(result.Continuation[n-1].Rate)
					}
					rows = append(rows, []string{
						r.Config().CategoryLabel(result.Category),
						strconv.Itoa(result.Uploaders),
						strconv.Itoa(result.Lifespan.Retired),
						latest,
						strconv.Itoa(len(result.Files)),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Category", "Uploaders", "Retired", "Latest continuation", "Files"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return files, nil
			})
		},
	}
}

func newSurvivalCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "survival [category...]",
		Short: "Compare uploader continuation and survival across categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				categories := args
				if len(categories) == 0 {
					categories = defaultSurvivalCategories
				}
				result, err := r.CompareSurvival(c, categories)
				if err != nil {
					return 0, err
				}
				if ctx.jsonOutput() {
					return len(result.Files), writeJSON(cmd, result)
				}
				var rows [][]string
				for _, cs := range result.Categories {
					for _, cohort := range cs.Continuation {
						rows = append(rows, []string{
							cs.Label,
							strconv.Itoa(cohort.Year),
							strconv.Itoa(cohort.Debuts),
							strconv.Itoa(cohort.Active),
							report.Percent(cohort.Rate),
						})
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Category", "Debut", "Debuts", "Active", "Rate"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return len(result.Files), nil
			})
		},
	}
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres [category...]",
		Short: "Compare yearly posts and views across genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				categories := args
				if len(categories) == 0 {
					categories = defaultGenreCategories
				}
				result, err := r.CompareGenres(c, categories)
				if err != nil {
					return 0, err
				}
				if ctx.jsonOutput() {
					return 1, writeJSON(cmd, result)
				}
				rows := make([][]string, 0, len(result.Rows))
				for _, row := range result.Rows {
					rows = append(rows, []string{
						row.Label,
						strconv.Itoa(row.Year),
						report.Grouped(int64(row.Posts)),
						report.JapaneseUnits(float64(row.TotalViews)),
						report.Grouped(int64(row.MedianViews)),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Genre", "Year", "Posts", "Views", "Median"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result.File)
				return 1, nil
			})
		},
	}
}

func newShareCommand(ctx *commandContext) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Compare local video counts and views with platform totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				result, err := r.Share(c, refresh)
				if err != nil {
					return 0, err
				}
				if ctx.jsonOutput() {
					return 1, writeJSON(cmd, result)
				}
				rows := make([][]string, 0, len(result.Rows))
				for _, row := range result.Rows {
					rows = append(rows, []string{
						strconv.Itoa(row.Year),
						report.Grouped(row.LocalVideos),
						report.Grouped(row.PlatformVideos),
						report.Percent(row.VideoPct),
						report.JapaneseUnits(float64(row.LocalViews)),
						report.JapaneseUnits(float64(row.PlatformViews)),
						report.Percent(row.ViewPct),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Year", "Videos", "Platform videos", "Video share", "Views", "Platform views", "View share"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
				))
				return 1, nil
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Download platform totals even when a previous table exists")
	return cmd
}

func newActiveUsersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "active-users [category]",
		Short: "List the longest-active uploaders of a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				category := categoryArg(args, r.Config().Analysis.OverallCategory)
				result, ok, err := r.ActiveUsers(c, category)
				if err != nil {
					return 0, err
				}
				if !ok {
					skipped(cmd, "uploader", category)
					return 0, nil
				}
				if ctx.jsonOutput() {
					return 0, writeJSON(cmd, result)
				}
				rows := make([][]string, 0, len(result.Users))
				for _, u := range result.Users {
					rows = append(rows, []string{
						strconv.Itoa(u.Rank),
						u.Nickname,
						strconv.FormatUint(u.UserID, 10),
						u.Debut.Format("2006-01-02"),
						u.Last.Format("2006-01-02"),
						strconv.Itoa(u.Posts),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%d active uploaders as of %s\n", result.Active, result.Reference.Now.Format("2006-01-02"))
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Nickname", "User", "Debut", "Last post", "Posts"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
				))
				return 0, nil
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Write the character statistics Markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				result, err := r.CharacterStats(c)
				if err != nil {
					return 0, err
				}
				if ctx.jsonOutput() {
					return 1, writeJSON(cmd, result)
				}
				rows := make([][]string, 0, len(result.Report.Rows))
				for _, row := range result.Report.Rows {
					genres := make([]string, 0, len(row.GenreRanks))
					for _, g := range row.GenreRanks {
						genres = append(genres, fmt.Sprintf("%s:%d", g.Label, g.Rank))
					}
					rows = append(rows, []string{
						row.Name,
						report.Grouped(row.LatestViews),
						rankText(row.LatestRank),
						report.Grouped(row.TotalViews),
						rankText(row.TotalRank),
						strings.Join(genres, ", "),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Character", strconv.Itoa(result.Report.LatestYear), "Rank", "Total", "Rank", "Genres"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
				fmt.Fprintf(out, "Wrote %s\n", result.File)
				return 1, nil
			})
		},
	}
}

func rankText(rank int) string {
	if rank <= 0 {
		return "-"
	}
	return strconv.Itoa(rank)
}

func newAnimateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "animate",
		Short: "Compute the frames of the overall rank animation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				result, ok, err := r.Animate(c)
				if err != nil {
					return 0, err
				}
				if !ok {
					skipped(cmd, "ranking", r.Config().Analysis.OverallCategory)
					return 0, nil
				}
				if ctx.jsonOutput() {
					return 1, writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %d frames for %d characters to %s\n", result.Frames, result.Actors, result.File)
				if len(result.Missing) > 0 {
					fmt.Fprintf(out, "No icon for: %s\n", strings.Join(result.Missing, ", "))
				}
				return 1, nil
			})
		},
	}
}

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	var req pipeline.SeriesRequest
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Write one character's yearly and cumulative views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				result, err := r.Series(c, req)
				if err != nil {
					return 0, err
				}
				if ctx.jsonOutput() {
					return 2, writeJSON(cmd, result)
				}
				rows := make([][]string, 0, len(result.Points))
				for i, p := range result.Points {
					rows = append(rows, []string{
						strconv.Itoa(p.Period),
						report.Grouped(p.Value),
						report.Grouped(result.Totals[i]),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Year", "Views", "Cumulative"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignRight},
				))
				fmt.Fprintf(out, "Wrote %s\n", result.Table)
				return 2, nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Entity, "entity", "ずんだもん", "Character name")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category (default: the overall category)")
	cmd.Flags().IntVar(&req.FromYear, "from", 2020, "First year of the series")
	return cmd
}
