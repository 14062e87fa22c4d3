package preflight

import (
	"context"

	"sift/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// The watch directory must already exist; sift never creates it because a
// typo there would silently watch an empty folder forever.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Watch directory", cfg.Paths.WatchDir))
	results = append(results, CheckLogDir(cfg))

	if cfg.Routing.Classifier == "llm" {
		results = append(results, CheckLLM(ctx, "Classifier LLM", cfg.LLM))
	}

	return results
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}
