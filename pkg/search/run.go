package search

import (
	"context"
	"errors"
	"sync"

	"github.com/TheApac/stringcheese/pkg/haystack"
	"github.com/TheApac/stringcheese/pkg/types"
	"golang.org/x/sync/errgroup"
)

// errStopped ends a run early without reporting an error.
var errStopped = errors.New("run stopped")

// Run scans every view of buf and calls fn for each result, in view order and
// then end-offset order, whatever the number of workers. Cancellation of ctx
// is observed between views. fn returning ErrStop ends the run cleanly; any
// other error aborts it and is returned.
func (e *Engine) Run(ctx context.Context, buf []byte, fn func(types.Result) error) error {
	sink := &emitter{
		engine: e,
		fn:     fn,
		dedup:  NewDeduplicator(e.cfg.Dedupe),
		total:  e.ViewCount(),
	}

	var err error
	if e.cfg.Workers > 1 {
		err = e.runParallel(ctx, buf, sink)
	} else {
		err = e.runSequential(ctx, buf, sink)
	}

	e.logger.Debug("run finished", "bytes", len(buf), "views", sink.done, "results", sink.emitted)

	if errors.Is(err, errStopped) {
		return nil
	}
	return err
}

// Collect returns every result of a run over buf.
func (e *Engine) Collect(ctx context.Context, buf []byte) ([]types.Result, error) {
	var results []types.Result
	err := e.Run(ctx, buf, func(r types.Result) error {
		results = append(results, r)
		return nil
	})
	return results, err
}

func (e *Engine) runSequential(ctx context.Context, buf []byte, sink *emitter) error {
	for v := range haystack.Views(buf, e.maxStep) {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		e.ScanView(v, func(r types.Result) bool {
			err = sink.result(r)
			return err == nil
		})
		if err != nil {
			return err
		}
		sink.viewDone()
	}
	return nil
}

// runParallel hands views to a pool of workers. At most about twice the
// worker count of views are alive at once; results are reordered by view
// sequence before reaching the sink.
func (e *Engine) runParallel(ctx context.Context, buf []byte, sink *emitter) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		seq  int
		view haystack.View
	}
	type scanned struct {
		seq     int
		results []types.Result
	}

	jobs := make(chan job, e.cfg.Workers)
	done := make(chan scanned, e.cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		seq := 0
		for v := range haystack.Views(buf, e.maxStep) {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- job{seq: seq, view: v}:
			case <-gctx.Done():
				return gctx.Err()
			}
			seq++
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				var results []types.Result
				e.ScanView(j.view, func(r types.Result) bool {
					results = append(results, r)
					return true
				})
				select {
				case done <- scanned{seq: j.seq, results: results}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	pending := make(map[int][]types.Result)
	next := 0
	var sinkErr error
	for s := range done {
		if sinkErr != nil {
			continue
		}
		pending[s.seq] = s.results
		for sinkErr == nil {
			results, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			sinkErr = sink.view(results)
		}
		if sinkErr != nil {
			cancel()
		}
	}

	groupErr := g.Wait()
	if sinkErr != nil {
		return sinkErr
	}
	return groupErr
}

// emitter applies dedupe, filter and stop rules to results in output order.
type emitter struct {
	engine  *Engine
	fn      func(types.Result) error
	dedup   *Deduplicator
	total   int
	done    int
	emitted int
}

func (s *emitter) result(r types.Result) error {
	if !s.engine.accept(r) {
		return nil
	}
	if s.dedup.IsDuplicate(r) {
		return nil
	}
	s.dedup.Add(r)

	if err := s.fn(r); err != nil {
		if errors.Is(err, ErrStop) {
			return errStopped
		}
		return err
	}
	s.emitted++

	if s.engine.cfg.StopAfterFirst {
		return errStopped
	}
	return nil
}

func (s *emitter) view(results []types.Result) error {
	for _, r := range results {
		if err := s.result(r); err != nil {
			return err
		}
	}
	s.viewDone()
	return nil
}

func (s *emitter) viewDone() {
	s.done++
	if s.engine.cfg.OnView != nil {
		s.engine.cfg.OnView(s.done, s.total)
	}
}
