package pipeline

import (
	"fmt"
	"sync"

	"github.com/carvekit/carvepipe/internal/carve"
	"github.com/carvekit/carvepipe/internal/video"
)

// Result is the outcome of transforming one frame. On failure Err is set and
// Frame carries only the original index, so the position survives into the
// ordered result sequence.
type Result struct {
	Frame video.Frame
	Err   error
}

// OK reports whether the transform succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Pool runs frame transformations on a fixed set of workers. It is started
// once per run and stopped after the final batch; Process presents a
// synchronous barrier, so batches never overlap.
type Pool struct {
	size      int
	transform carve.Transformer
	scaleX    float64
	scaleY    float64

	mu      sync.Mutex
	jobs    chan job
	wg      sync.WaitGroup
	started bool
}

// job carries one frame together with its batch-relative slot in the
// pre-sized result slice. Workers write results by slot, never by completion
// order.
type job struct {
	frame   video.Frame
	slot    int
	results []Result
	done    *sync.WaitGroup
}

// NewPool creates a pool of size workers applying transform with the given
// scale factors.
func NewPool(size int, transform carve.Transformer, scaleX, scaleY float64) *Pool {
	return &Pool{
		size:      size,
		transform: transform,
		scaleX:    scaleX,
		scaleY:    scaleY,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return fmt.Errorf("pool already started")
	}
	p.started = true
	p.jobs = make(chan job)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return nil
}

// Stop tears the workers down. Safe to call more than once; must not be
// called while a Process call is in flight.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Process transforms every frame of batch and blocks until all results are
// in. The returned slice has exactly batch.Len() entries in the batch's
// original order regardless of worker completion order. A frame whose
// transform fails or panics produces a failed Result at its slot; siblings
// are unaffected.
func (p *Pool) Process(batch *Batch) []Result {
	results := make([]Result, batch.Len())

	var done sync.WaitGroup
	done.Add(batch.Len())
	for i, f := range batch.Frames {
		p.jobs <- job{frame: f, slot: i, results: results, done: &done}
	}
	done.Wait()

	return results
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.results[j.slot] = p.transformOne(j.frame)
		j.done.Done()
	}
}

// transformOne applies the transform to a single frame, converting an error
// return or a panic into a failed Result.
func (p *Pool) transformOne(f video.Frame) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Frame: video.Frame{Index: f.Index},
				Err:   fmt.Errorf("transform panicked on frame %d: %v", f.Index, r),
			}
		}
	}()

	out, err := p.transform.Transform(f, p.scaleX, p.scaleY)
	if err != nil {
		return Result{
			Frame: video.Frame{Index: f.Index},
			Err:   fmt.Errorf("transform frame %d: %w", f.Index, err),
		}
	}
	return Result{Frame: out}
}
