package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"voirank/internal/pipeline"
	"voirank/internal/store"
)

func TestHistoryCommandRecordsRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var result pipeline.HistoryResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode history output: %v\n%s", err, out)
	}
	if len(result.Outputs) != 2 {
		t.Fatalf("expected overall and game rankings, got %d", len(result.Outputs))
	}
	if result.Outputs[0].Name != "overall_views" || result.Outputs[1].Name != "game_views" {
		t.Fatalf("unexpected ranking names %q %q", result.Outputs[0].Name, result.Outputs[1].Name)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.CacheDir, "software_talk_processed.csv")); err != nil {
		t.Fatalf("expected mention cache: %v", err)
	}

	out, _, err = runCLI(t, []string{"--json", "runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	var runs []store.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Command != "history" || runs[0].Status != store.RunSucceeded {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if runs[0].Artifacts != len(result.Files()) {
		t.Fatalf("expected %d artifacts, got %d", len(result.Files()), runs[0].Artifacts)
	}
}

func TestSeriesCommandFailureIsRecorded(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"series", "--entity", "ずんだもん", "--from", "2021"}, env.configPath)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	requireContains(t, out, "CUMULATIVE")
	requireContains(t, out, "130")
	requireContains(t, out, "ずんだもん_cumulative_stats_software_talk_2021.csv")

	if _, _, err := runCLI(t, []string{"series", "--from", "2030"}, env.configPath); err == nil {
		t.Fatal("expected validation error")
	}
	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "failed")
	requireContains(t, out, "succeeded")
}

func TestCharactersCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"characters", "game", "kitchen"}, env.configPath)
	if err != nil {
		t.Fatalf("characters: %v", err)
	}
	requireContains(t, out, "琴葉茜")
	requireContains(t, out, "No character data for kitchen; skipped")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "game", "game_character_ranking_overall.csv")); err != nil {
		t.Fatalf("expected ranking csv: %v", err)
	}
}

func TestPairsCommandSkipsMissingCategory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"pairs", "kitchen"}, env.configPath)
	if err != nil {
		t.Fatalf("pairs on a missing category should be skipped: %v", err)
	}
	requireContains(t, out, "No pair data for kitchen; skipped")

	out, _, err = runCLI(t, []string{"pairs"}, env.configPath)
	if err != nil {
		t.Fatalf("pairs: %v", err)
	}
	requireContains(t, out, "game_pairings")
}

func TestDoctorReportsMissingCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "Character catalog")

	if err := os.Remove(env.cfg.Paths.CatalogPath); err != nil {
		t.Fatalf("remove catalog: %v", err)
	}
	if _, _, err := runCLI(t, []string{"doctor"}, env.configPath); err == nil {
		t.Fatal("expected doctor to fail without a catalog")
	}
}
