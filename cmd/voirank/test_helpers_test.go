package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voirank/internal/config"
	"voirank/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t,
		testsupport.WithCatalog("結月ゆかり", "琴葉茜", "琴葉葵", "ずんだもん"),
		testsupport.WithYears(2020, 2022),
	)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	testsupport.WriteBlob(t, cfg, "software_talk",
		testsupport.Video("sm1", 1, 100, 2020, 3, 1, "結月ゆかり"),
		testsupport.Video("sm2", 2, 50, 2021, 4, 1, "琴葉茜", "ずんだもん"),
		testsupport.Video("sm3", 1, 80, 2022, 5, 1, "ずんだもん"),
	)
	testsupport.WriteBlob(t, cfg, "game",
		testsupport.Video("sm4", 3, 300, 2021, 6, 1, "琴葉茜", "琴葉葵"),
		testsupport.Video("sm5", 3, 200, 2022, 7, 1, "琴葉茜", "琴葉葵", "結月ゆかり"),
	)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\noutput_dir = %q\ncache_dir = %q\ncatalog_path = %q\nicon_dir = %q\nstate_dir = %q\n\n"+
			"[analysis]\nmin_year = %d\nmax_year = %d\n\n"+
			"[logging]\nlevel = \"error\"\n",
		cfg.Paths.DataDir,
		cfg.Paths.OutputDir,
		cfg.Paths.CacheDir,
		cfg.Paths.CatalogPath,
		cfg.Paths.IconDir,
		cfg.Paths.StateDir,
		cfg.Analysis.MinYear,
		cfg.Analysis.MaxYear,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
