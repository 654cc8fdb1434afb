package preflight

import (
	"context"

	"voirank/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional failures are reported but do not fail the doctor command.
	Optional bool
}

// Options selects the checks that need more than the local filesystem.
type Options struct {
	// Online probes the external endpoints.
	Online bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDir("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckFileReadable("Character catalog", cfg.Paths.CatalogPath),
	}

	icons := CheckReadableDir("Icon directory", cfg.Paths.IconDir)
	icons.Optional = true
	results = append(results, icons)

	results = append(results, CheckBlobs(cfg)...)

	if opts.Online {
		results = append(results,
			CheckEndpoint(ctx, "Snapshot search API", cfg.Fetch.SnapshotURL, cfg.Fetch.UserAgent),
			CheckEndpoint(ctx, "Nickname API", cfg.Fetch.NicknameURL, cfg.Fetch.UserAgent),
			CheckEndpoint(ctx, "Platform totals", cfg.Fetch.NicochartURL+"/", cfg.Fetch.UserAgent),
		)
	}
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
