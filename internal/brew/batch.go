package brew

import (
	"context"
	"fmt"
)

// StreamOp runs one streaming operation for a single package and yields
// its output.
type StreamOp func(ctx context.Context, name string) (<-chan OutputChunk, error)

// PlainOp runs one non-streaming operation for a single package.
type PlainOp func(ctx context.Context, name string) error

// SequenceStream applies a streaming operation to each package in turn,
// strictly sequentially — Homebrew holds its own lock and running two
// instances at once just provokes contention. Each item's output is
// prefixed with a banner chunk. A per-item failure becomes an error line
// in the feed and the remaining items still run.
//
// The returned channel closes after the last item. Cancelling ctx stops
// the batch after the current item's stream ends.
func SequenceStream(ctx context.Context, verb string, names []string, op StreamOp) <-chan OutputChunk {
	out := make(chan OutputChunk)
	go func() {
		defer close(out)
		for i, name := range names {
			if ctx.Err() != nil {
				return
			}
			if !emit(ctx, out, OutputChunk{Text: banner(verb, name, i+1, len(names))}) {
				return
			}
			chunks, err := op(ctx, name)
			if err != nil {
				if !emit(ctx, out, failureChunk(name, err)) {
					return
				}
				continue
			}
			for chunk := range chunks {
				if !emit(ctx, out, chunk) {
					// Drain so the producer's readers can finish.
					for range chunks {
					}
					return
				}
			}
		}
	}()
	return out
}

// SequencePlain applies a non-streaming operation to each package in
// turn, reporting each item's outcome as a line in the feed. Failures do
// not abort the remaining items.
func SequencePlain(ctx context.Context, verb string, names []string, op PlainOp) <-chan OutputChunk {
	out := make(chan OutputChunk)
	go func() {
		defer close(out)
		for i, name := range names {
			if ctx.Err() != nil {
				return
			}
			if !emit(ctx, out, OutputChunk{Text: banner(verb, name, i+1, len(names))}) {
				return
			}
			if err := op(ctx, name); err != nil {
				if !emit(ctx, out, failureChunk(name, err)) {
					return
				}
				continue
			}
			if !emit(ctx, out, OutputChunk{Text: fmt.Sprintf("%s: done\n", name)}) {
				return
			}
		}
	}()
	return out
}

func banner(verb, name string, i, total int) string {
	return fmt.Sprintf("==> %s %s (%d/%d)\n", verb, name, i, total)
}

func failureChunk(name string, err error) OutputChunk {
	return OutputChunk{
		Text:     fmt.Sprintf("Error: %s: %v\n", name, err),
		IsStderr: true,
	}
}

func emit(ctx context.Context, out chan<- OutputChunk, chunk OutputChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
