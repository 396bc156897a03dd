// Package batch fans a slice of independent rasterize jobs out across a
// bounded worker pool: each worker owns its own Rasterizer-equivalent
// state, since nothing in internal/raster or internal/edge may be shared
// across goroutines.
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/gpufill/gpufill/internal/config"
	"github.com/gpufill/gpufill/internal/edge"
	"github.com/gpufill/gpufill/internal/pathbuilder"
	"github.com/gpufill/gpufill/internal/raster"
	"github.com/gpufill/gpufill/internal/rasterr"
	"github.com/gpufill/gpufill/internal/rlog"
	"github.com/gpufill/gpufill/internal/vertexbuf"
	"github.com/gpufill/gpufill/internal/xform"
)

// Job is one independent rasterize request.
type Job struct {
	Path    *pathbuilder.Path
	Matrix  xform.Matrix
	Clip    edge.ClipRect
	Config  config.RasterConfig
	Outside vertexbuf.Rect
	Viewport float32
}

// Result is one job's outcome, in the same order as the input slice.
type Result struct {
	Strip []vertexbuf.OutputVertex
	Lines []vertexbuf.OutputVertex
	Err   error
}

type indexedJob struct {
	index int
	job   Job
}

// RasterizeAll rasterizes jobs concurrently across a worker pool sized by
// workers (0 means runtime.GOMAXPROCS(0)), one edge/vertex-builder state
// per goroutine. It cancels outstanding work on the first ctx.Done() or the
// first out-of-memory error; a per-job BadNumber/ValueOverflow never
// aborts the batch, since those jobs are expected to produce empty output
// rather than fail the whole call.
func RasterizeAll(ctx context.Context, jobs []Job, workers int, log rlog.Logger) ([]Result, error) {
	if log == nil {
		log = rlog.Default()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	in := make(chan indexedJob)
	var firstHardErr error
	var errMu sync.Mutex

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for ij := range in {
				select {
				case <-cctx.Done():
					results[ij.index] = Result{Err: cctx.Err()}
					continue
				default:
				}

				strip, lines, err := rasterizeOne(ij.job, log)
				results[ij.index] = Result{Strip: strip, Lines: lines, Err: err}

				if err != nil && !rasterr.IsEmptyGeometry(err) {
					errMu.Lock()
					if firstHardErr == nil {
						firstHardErr = err
						cancel()
					}
					errMu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(in)
		for i, job := range jobs {
			select {
			case <-cctx.Done():
				return
			case in <- indexedJob{index: i, job: job}:
			}
		}
	}()

	wg.Wait()

	if firstHardErr != nil {
		log.Warn("batch: aborted on hard error", "err", firstHardErr)
		return results, firstHardErr
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func rasterizeOne(job Job, log rlog.Logger) ([]vertexbuf.OutputVertex, []vertexbuf.OutputVertex, error) {
	store, err := edge.InitializeEdges(job.Path, job.Matrix, job.Clip, job.Config)
	if err != nil {
		if rasterr.IsEmptyGeometry(err) {
			return nil, nil, err
		}
		return nil, nil, err
	}

	needOutside := job.Config.EnableComplement
	vb := vertexbuf.New(job.Config.NeedInsideGeometry || !needOutside, needOutside, job.Viewport, job.Outside)

	if store.Count() == 0 {
		if needOutside {
			vb.EndBuildingOutside()
		}
		return vb.Strip, vb.Lines, nil
	}

	raster.RasterizeEdges(store, job.Clip, job.Config, vb, log)
	if needOutside {
		vb.EndBuildingOutside()
	}
	return vb.Strip, vb.Lines, nil
}
