package importer

import (
	"context"
	"sync"
	"time"
)

type task struct {
	key string
	run func(ctx context.Context) error
}

type result struct {
	Key string
	Err error
}

// pool runs submitted tasks on a fixed number of workers, optionally
// throttled to a request rate shared by all workers.
type pool struct {
	workers int
	tasks   chan task
	wg      sync.WaitGroup
	ticker  *time.Ticker
}

func newPool(workers, rps int) *pool {
	if workers <= 0 {
		workers = 1
	}
	p := &pool{workers: workers, tasks: make(chan task, workers*2)}
	if rps > 0 {
		p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	}
	return p
}

func (p *pool) submit(ctx context.Context, key string, fn func(ctx context.Context) error) bool {
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- task{key: key, run: fn}:
		return true
	}
}

func (p *pool) close() {
	close(p.tasks)
}

func (p *pool) start(ctx context.Context) <-chan result {
	out := make(chan result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				if ctx.Err() != nil {
					out <- result{Key: t.key, Err: ctx.Err()}
					continue
				}
				if p.ticker != nil {
					select {
					case <-ctx.Done():
						out <- result{Key: t.key, Err: ctx.Err()}
						continue
					case <-p.ticker.C:
					}
				}
				out <- result{Key: t.key, Err: t.run(ctx)}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		if p.ticker != nil {
			p.ticker.Stop()
		}
		close(out)
	}()
	return out
}
