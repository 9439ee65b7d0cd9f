package sweep

import (
	"context"

	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/domain/runstats"
)

// Comparison holds the two reports of a back-to-back run plus the derived
// timing figures.
type Comparison struct {
	Sequential *domain.Report   `json:"sequential"`
	Pool       *domain.Report   `json:"pool"`
	SeqStats   runstats.Summary `json:"sequential_stats"`
	PoolStats  runstats.Summary `json:"pool_stats"`
	Speedup    float64          `json:"speedup"`
}

// RunComparison sweeps the manifest sequentially, then again through the
// worker pool, and logs how the two wall times compare. The sequential run's
// error aborts the comparison before the pool run starts.
func (s *Service) RunComparison(ctx context.Context, manifest []domain.Resource) (*Comparison, error) {
	seq, err := s.RunSequential(ctx, manifest)
	if err != nil {
		return nil, err
	}

	pool, err := s.RunPool(ctx, manifest)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Sequential: seq,
		Pool:       pool,
		SeqStats:   runstats.Summarize(seq.Durations()),
		PoolStats:  runstats.Summarize(pool.Durations()),
		Speedup:    runstats.Speedup(seq.TotalDuration(), pool.TotalDuration()),
	}

	s.logger.Info("sweep comparison",
		"resources", len(manifest),
		"workers", s.cfg.Workers,
		"sequential_total", seq.TotalDuration(),
		"pool_total", pool.TotalDuration(),
		"speedup", cmp.Speedup,
		"sequential_mean", cmp.SeqStats.Mean,
		"pool_mean", cmp.PoolStats.Mean)

	return cmp, nil
}
