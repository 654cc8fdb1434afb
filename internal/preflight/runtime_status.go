package preflight

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"voirank/internal/config"
)

// CheckBlobs reports, per configured category, whether its snapshot blob is
// present. Missing blobs are optional: reports skip those categories.
func CheckBlobs(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result
	for _, name := range cfg.CategoryNames() {
		path := cfg.BlobPath(name)
		label := fmt.Sprintf("Blob %s (%s)", name, cfg.CategoryLabel(name))
		info, err := os.Stat(path)
		switch {
		case err != nil:
			results = append(results, Result{Name: label, Optional: true, Detail: fmt.Sprintf("%s (missing, run fetch)", path)})
		case info.IsDir():
			results = append(results, Result{Name: label, Detail: fmt.Sprintf("%s (error: is a directory)", path)})
		default:
			results = append(results, Result{Name: label, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))})
		}
	}
	return results
}
