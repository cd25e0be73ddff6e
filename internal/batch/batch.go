package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of inputs rendered simultaneously when no
// limit is configured.
const DefaultConcurrency = 4

// RenderFunc renders a single input document and returns the report bytes.
// On failure it may still return partial output (for example an error line
// destined for stdout) alongside the error.
type RenderFunc func(ctx context.Context, input string) ([]byte, error)

// Outcome holds the result of rendering one input document.
type Outcome struct {
	// Input is the path of the input document.
	Input string
	// Output is the rendered report. May be non-empty even on failure.
	Output []byte
	// Err is the failure that stopped this input, if any.
	Err error
	// Duration is how long the render took.
	Duration time.Duration
}

// Processor renders multiple input documents concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: The Processor takes a RenderFunc rather than owning the
// render logic because:
// 1. It keeps this package free of report and configuration concerns
// 2. The same Processor drives file output, stdout output, and tests
// 3. Callers decide what a failure means for their exit code
type Processor struct {
	// render produces the report for one input.
	render RenderFunc

	// concurrency is the maximum number of concurrent renders.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// outcomes stores completed renders in input order.
	// Access is synchronized via mutex.
	outcomes []Outcome
	mu       sync.Mutex
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger for batch processing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent renders.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewProcessor creates a Processor that renders inputs with the given
// RenderFunc.
func NewProcessor(render RenderFunc, opts ...Option) *Processor {
	p := &Processor{
		render:      render,
		concurrency: DefaultConcurrency,
		outcomes:    make([]Outcome, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Process renders all inputs concurrently and returns one outcome per input,
// in input order.
//
// A render failure is recorded in its outcome and never stops the remaining
// inputs. The error return is non-nil only when the batch itself was
// cancelled via the context.
func (p *Processor) Process(ctx context.Context, inputs []string) ([]Outcome, error) {
	p.logger.Info("starting batch render",
		"total_inputs", len(inputs),
		"concurrency", p.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate outcomes to maintain input order
	p.outcomes = make([]Outcome, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p.logger.Debug("rendering input",
				"input", input,
				"index", i+1,
				"total", len(inputs),
			)

			renderStart := time.Now()
			output, err := p.render(ctx, input)

			outcome := Outcome{
				Input:    input,
				Output:   output,
				Err:      err,
				Duration: time.Since(renderStart),
			}

			// Store the outcome regardless of error
			p.mu.Lock()
			p.outcomes[i] = outcome
			p.mu.Unlock()

			if err != nil {
				p.logger.Warn("render failed",
					"input", input,
					"error", err,
				)
				// Don't return the error to errgroup - we want the
				// remaining inputs to render
				return nil
			}

			p.logger.Debug("render completed",
				"input", input,
				"bytes", len(output),
			)

			return nil
		})
	}

	err := g.Wait()

	failed := 0
	for _, outcome := range p.outcomes {
		if outcome.Err != nil {
			failed++
		}
	}

	p.logger.Info("batch render complete",
		"total_inputs", len(inputs),
		"failed", failed,
		"elapsed", time.Since(startTime),
	)

	return p.outcomes, err
}

// ProcessWithCallback renders all inputs and calls the callback for each
// completed render. This is useful for streaming results as they finish.
//
// The callback receives the outcome and the index of the input in the
// original slice. It is called from the goroutine that finished the render,
// so it must be safe for concurrent use.
func (p *Processor) ProcessWithCallback(
	ctx context.Context,
	inputs []string,
	callback func(outcome Outcome, index int),
) error {
	p.logger.Info("starting batch render with callback",
		"total_inputs", len(inputs),
		"concurrency", p.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			renderStart := time.Now()
			output, err := p.render(ctx, input)

			callback(Outcome{
				Input:    input,
				Output:   output,
				Err:      err,
				Duration: time.Since(renderStart),
			}, i)

			return nil
		})
	}

	return g.Wait()
}
