package replay

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/trackball/internal/session"
	"github.com/san-kum/trackball/internal/trackball"
)

// Session loads and replays one recorded session with the default metrics,
// at the sensitivity it was recorded with.
func Session(ctx context.Context, store *session.Store, id string) (*Result, error) {
	meta, err := store.Load(id)
	if err != nil {
		return nil, err
	}
	records, err := store.LoadRecords(id)
	if err != nil {
		return nil, err
	}

	cfg := trackball.Config{Sensitivity: meta.Sensitivity}
	if cfg.Validate() != nil {
		cfg = trackball.DefaultConfig()
	}
	p := NewPlayer(cfg)
	p.AddMetric(DefaultMetrics()...)

	res, err := p.Run(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", id, err)
	}
	res.ID = id
	return res, nil
}

// RunAll replays sessions concurrently, each with its own registry and sink.
// Results keep the order of ids. The first failure cancels the rest.
func RunAll(ctx context.Context, store *session.Store, ids []string, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]*Result, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			res, err := Session(ctx, store, id)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
