package analyzer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/genba-labs/shashin-cli/internal/cache"
	"github.com/genba-labs/shashin-cli/internal/core/domain"
	"github.com/genba-labs/shashin-cli/internal/logger"
	"github.com/genba-labs/shashin-cli/internal/scanner"
)

// Provider analyses a single photograph and returns the raw response
// text, which ParseResponse then decodes.
type Provider interface {
	AnalyzeImage(ctx context.Context, path string) (string, error)
}

// ResultCache is the subset of the cache store the runner needs.
type ResultCache interface {
	Get(hash string) (*domain.AnalysisResult, error)
	Put(hash, fileName string, fileSize int64, result *domain.AnalysisResult) error
}

// RunStats counts what happened during a batch run.
type RunStats struct {
	// Analyzed is the number of photos sent to the provider.
	Analyzed int

	// FromCache is the number of photos served from the cache.
	FromCache int

	// Failed is the number of photos that produced no usable record.
	Failed int
}

// defaultRate throttles provider calls to one every two seconds.
const defaultRate = rate.Limit(0.5)

// Runner drives a folder's photos through the provider, one at a time,
// consulting the content-hash cache first.
type Runner struct {
	provider Provider
	results  ResultCache
	limiter  *rate.Limiter
}

// NewRunner creates a runner. The cache may be nil, in which case
// every photo goes to the provider.
func NewRunner(provider Provider, results ResultCache) *Runner {
	return &Runner{
		provider: provider,
		results:  results,
		limiter:  rate.NewLimiter(defaultRate, 1),
	}
}

// Run analyses the given images in order and returns one record per
// successfully analysed photo, plus run statistics. Individual photo
// failures are logged and counted, not fatal; the run only aborts on
// context cancellation.
func (r *Runner) Run(ctx context.Context, images []scanner.ImageInfo) ([]domain.AnalysisResult, RunStats, error) {
	var (
		batch []domain.AnalysisResult
		stats RunStats
	)

	for _, img := range images {
		result, fromCache, err := r.analyzeOne(ctx, img)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return batch, stats, err
			}
			logger.Warn("analysing %s: %v", img.FileName, err)
			stats.Failed++
			continue
		}

		if fromCache {
			stats.FromCache++
		} else {
			stats.Analyzed++
		}
		batch = append(batch, *result)
	}

	return batch, stats, nil
}

// analyzeOne serves one photo from the cache or the provider.
func (r *Runner) analyzeOne(ctx context.Context, img scanner.ImageInfo) (*domain.AnalysisResult, bool, error) {
	hash, err := cache.HashFile(img.Path)
	if err != nil {
		return nil, false, err
	}

	if r.results != nil {
		cached, err := r.results.Get(hash)
		if err == nil {
			logger.Debug("cache hit for %s", img.FileName)
			return cached, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrCacheVersion) {
			return nil, false, err
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	raw, err := r.provider.AnalyzeImage(ctx, img.Path)
	if err != nil {
		return nil, false, fmt.Errorf("provider: %w", err)
	}

	results, err := ParseResponse(raw)
	if err != nil {
		return nil, false, err
	}
	if len(results) == 0 {
		return nil, false, domain.ErrNoResponse
	}

	result := &results[0]
	if result.FileName == "" {
		result.FileName = img.FileName
	}
	if err := ValidateResult(result); err != nil {
		return nil, false, err
	}

	if r.results != nil {
		if err := r.results.Put(hash, img.FileName, img.Size, result); err != nil {
			logger.Warn("caching %s: %v", img.FileName, err)
		}
	}
	return result, false, nil
}
