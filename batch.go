package zraster

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gogpu/zraster/internal/parallel"
)

// Job is one independent render.
type Job struct {
	Model   Model
	Options []Option
}

// RenderBatch renders jobs concurrently on a pool of workers and returns
// the framebuffers in job order. If workers is 0 or negative, GOMAXPROCS
// workers are used.
//
// Renders share no state, so the result is identical to calling Render on
// each job in turn. When ctx is canceled the remaining jobs are not started
// and the context error is returned.
func RenderBatch(ctx context.Context, jobs []Job, workers int) ([]*Pixmap, error) {
	if len(jobs) == 0 {
		return nil, ctx.Err()
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewWorkerPool(min(workers, len(jobs)))
	defer pool.Close()

	out := make([]*Pixmap, len(jobs))
	err := pool.Run(ctx, len(jobs), func(i int) {
		out[i] = Render(jobs[i].Model, jobs[i].Options...)
	})
	if err != nil {
		Logger().Warn("zraster: batch interrupted", "jobs", len(jobs), "err", err)
		return nil, fmt.Errorf("zraster: render batch: %w", err)
	}
	return out, nil
}
