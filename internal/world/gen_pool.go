package world

import (
	"context"
	"sync"
)

// genJob asks a worker to populate one chunk.
type genJob struct {
	chunk *Chunk
	done  chan<- *Chunk
}

// GenPool populates chunks on a fixed set of goroutines. Each job touches
// only its own chunk and the generator is read-only, so distinct chunks can
// be filled in parallel. Generate itself blocks until its batch is done; the
// world is still driven from a single goroutine.
type GenPool struct {
	gen      *Generator
	jobQueue chan genJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewGenPool starts workers goroutines reading from a queue of queueSize jobs.
func NewGenPool(gen *Generator, workers, queueSize int) *GenPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &GenPool{
		gen:      gen,
		jobQueue: make(chan genJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// Generate populates every chunk in chunks and returns once all are done.
// After Shutdown it generates nothing.
func (p *GenPool) Generate(chunks []*Chunk) {
	if len(chunks) == 0 {
		return
	}
	done := make(chan *Chunk, len(chunks))
	queued := 0
	for _, c := range chunks {
		select {
		case p.jobQueue <- genJob{chunk: c, done: done}:
			queued++
		case <-p.ctx.Done():
		}
	}
	for range queued {
		select {
		case <-done:
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *GenPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			job.chunk.Generate(p.gen)
			job.done <- job.chunk
		case <-p.ctx.Done():
			return
		}
	}
}

// Workers returns the number of goroutines.
func (p *GenPool) Workers() int { return p.workers }

// QueueLength returns the number of jobs waiting for a worker.
func (p *GenPool) QueueLength() int { return len(p.jobQueue) }

// Shutdown stops the workers and waits for them to exit.
func (p *GenPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
