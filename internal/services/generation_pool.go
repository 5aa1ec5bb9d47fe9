package services

import (
	"context"
	"errors"
	"log"
	"sync"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/queue"
)

// Generator is the outbound text-generation client.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
	GenerateStream(ctx context.Context, prompt, model string) (string, error)
}

type generationJob struct {
	ctx    context.Context
	prompt string
	model  string
	stream bool
	result chan generationResult
}

type generationResult struct {
	text string
	err  error
}

// GenerationPool runs gateway calls on a fixed set of workers so a slow
// model cannot tie up every request goroutine. Capacity tokens bound the
// number of calls admitted at once.
type GenerationPool struct {
	queue     chan generationJob
	wg        sync.WaitGroup
	generator Generator
	tokens    queue.TokenManager

	mu     sync.RWMutex
	closed bool
}

func NewGenerationPool(generator Generator, tokens queue.TokenManager, workers, queueSize int) *GenerationPool {
	p := &GenerationPool{
		queue:     make(chan generationJob, queueSize),
		generator: generator,
		tokens:    tokens,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Submit blocks until the generation finishes or ctx is done.
func (p *GenerationPool) Submit(ctx context.Context, prompt, model string, stream bool) (string, error) {
	if err := p.tokens.AcquireToken(ctx); err != nil {
		if errors.Is(err, queue.ErrNoTokenAvailable) {
			return "", apperrors.ErrGenerationBusy
		}
		return "", err
	}

	job := generationJob{
		ctx:    ctx,
		prompt: prompt,
		model:  model,
		stream: stream,
		result: make(chan generationResult, 1),
	}

	if !p.enqueue(job) {
		p.releaseToken(0)
		return "", apperrors.ErrGenerationBusy
	}

	select {
	case res := <-job.result:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *GenerationPool) enqueue(job generationJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}

	select {
	case p.queue <- job:
		return true
	default:
		return false
	}
}

func (p *GenerationPool) worker(workerID int) {
	defer p.wg.Done()

	log.Printf("[generation] worker %d started", workerID)

	for job := range p.queue {
		p.handle(workerID, job)
	}

	log.Printf("[generation] worker %d stopped", workerID)
}

func (p *GenerationPool) handle(workerID int, job generationJob) {
	res := p.run(workerID, job)
	// The slot is free before the caller sees the result.
	p.releaseToken(workerID)
	job.result <- res
}

func (p *GenerationPool) run(workerID int, job generationJob) generationResult {
	if err := job.ctx.Err(); err != nil {
		return generationResult{err: err}
	}

	var (
		text string
		err  error
	)
	if job.stream {
		text, err = p.generator.GenerateStream(job.ctx, job.prompt, job.model)
	} else {
		text, err = p.generator.Generate(job.ctx, job.prompt, job.model)
	}
	if err != nil {
		log.Printf("[generation] worker %d: generation failed: %v", workerID, err)
	}

	return generationResult{text: text, err: err}
}

func (p *GenerationPool) releaseToken(workerID int) {
	if err := p.tokens.ReleaseToken(context.Background()); err != nil {
		log.Printf("[generation] worker %d: failed to release slot: %v", workerID, err)
	}
}

func (p *GenerationPool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[generation] worker pool shut down cleanly")
	case <-ctx.Done():
		log.Println("[generation] worker pool shutdown timed out")
	}
}
