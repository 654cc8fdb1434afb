package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"voirank/internal/catalog"
	"voirank/internal/config"
	"voirank/internal/dataset"
)

var jst = time.FixedZone("JST", 9*3600)

// Video builds a record posted at noon JST on the given date.
func Video(id string, userID uint64, views int64, year int, month time.Month, day int, tags ...string) dataset.Record {
	return dataset.Record{
		ContentID:   id,
		Title:       "video " + id,
		UserID:      userID,
		ViewCounter: views,
		StartTime:   time.Date(year, month, day, 12, 0, 0, 0, jst),
		Tags:        tags,
	}
}

// WriteBlob saves records as the snapshot blob for category.
func WriteBlob(t testing.TB, cfg *config.Config, category string, records ...dataset.Record) string {
	t.Helper()

	blobs := dataset.NewBlobStore(cfg.Paths.DataDir)
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	blob := &dataset.Blob{Meta: dataset.Meta{TotalCount: len(records)}, Data: records}
	if err := blobs.Save(category, blob); err != nil {
		t.Fatalf("save blob %s: %v", category, err)
	}
	return blobs.Path(category)
}

// WriteRawBlob writes an arbitrary JSON document as the blob for category.
func WriteRawBlob(t testing.TB, cfg *config.Config, category string, doc any) {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal blob: %v", err)
	}
	WriteText(t, cfg.BlobPath(category), string(data))
}

// WriteCatalog writes a catalog CSV with the standard header.
func WriteCatalog(t testing.TB, path string, names ...string) {
	t.Helper()

	WriteText(t, path, catalog.NameColumn+"\n"+strings.Join(names, "\n")+"\n")
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadText returns the content of path.
func ReadText(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
