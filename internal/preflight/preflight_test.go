package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voirank/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "characters.csv")
	if err := os.WriteFile(f, []byte("キャラクター名\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckFileReadable("catalog", f); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckFileReadable("catalog", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckFileReadable("catalog", filepath.Join(dir, "missing.csv")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestCheckEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "voirank-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		if strings.HasSuffix(r.URL.Path, "/down") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	if result := CheckEndpoint(context.Background(), "search", srv.URL+"/search", "voirank-test"); !result.Passed {
		t.Fatalf("expected 4xx to count as reachable, got: %s", result.Detail)
	}
	if result := CheckEndpoint(context.Background(), "search", srv.URL+"/down", "voirank-test"); result.Passed {
		t.Fatal("expected 5xx to fail")
	}
	if result := CheckEndpoint(context.Background(), "search", "", ""); result.Passed || result.Detail != "missing url" {
		t.Fatalf("unexpected result for blank url: %+v", result)
	}
}

func TestRunAllReportsMissingBlobsAsOptional(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalog("結月ゆかり"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteBlob(t, cfg, "game", testsupport.Video("sm1", 1, 10, 2020, 1, 1, "結月ゆかり"))

	results := RunAll(context.Background(), cfg, Options{})
	if Failed(results) {
		for _, r := range results {
			t.Logf("%s passed=%v optional=%v %s", r.Name, r.Passed, r.Optional, r.Detail)
		}
		t.Fatal("expected required checks to pass")
	}
	var sawGame, sawMissing bool
	for _, r := range results {
		if strings.HasPrefix(r.Name, "Blob game") {
			sawGame = r.Passed
		}
		if strings.HasPrefix(r.Name, "Blob onboard") {
			sawMissing = !r.Passed && r.Optional
		}
	}
	if !sawGame || !sawMissing {
		t.Fatalf("expected game blob present and onboard missing-optional, got %+v", results)
	}
}
