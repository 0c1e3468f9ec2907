package brew

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// ExecutionResult is an immutable snapshot of a completed non-streaming
// run. ExitCode 0 does not imply the output is non-empty or meaningful;
// call sites decide what the output means.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// OutputChunk is one unit of streamed subprocess output. Chunks preserve
// emission order within their stream; interleaving of stdout and stderr
// is best-effort.
type OutputChunk struct {
	Text     string
	IsStderr bool
}

// Run launches the spec's process and collects stdout and stderr to
// completion. Both pipes are drained concurrently; reading them
// sequentially can deadlock when the child fills one kernel pipe buffer
// while we block on the other.
//
// A process that fails to start returns a *LaunchError. A process that
// starts and exits non-zero is NOT an error here: the exit code is
// reported in the result and call sites apply their own policy.
func Run(ctx context.Context, spec CommandSpec) (ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Env = mergedEnviron(spec.Env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return ExecutionResult{}, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return ExecutionResult{}, err
	}

	if err := cmd.Start(); err != nil {
		return ExecutionResult{}, &LaunchError{Path: spec.Path, Err: err}
	}

	var outBuf, errBuf []byte
	var outErr, errErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outBuf, outErr = io.ReadAll(stdout)
	}()
	go func() {
		defer wg.Done()
		errBuf, errErr = io.ReadAll(stderr)
	}()
	wg.Wait()

	result := ExecutionResult{
		Stdout: string(outBuf),
		Stderr: string(errBuf),
	}

	waitErr := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else if waitErr != nil {
		return result, waitErr
	}
	if outErr != nil {
		return result, outErr
	}
	if errErr != nil {
		return result, errErr
	}
	return result, nil
}

// Stream launches the spec's process and returns a channel of output
// chunks, one reader goroutine per pipe, closed when the process exits
// regardless of exit code. Callers that care about success must infer it
// from the emitted text or issue a separate check.
//
// Cancellation policy: cancelling ctx kills the process, unblocks the
// readers and ends the stream. Merely abandoning the channel without
// cancelling leaves the process running (a long upgrade may finish in
// the background); callers wanting hard termination cancel the context.
func Stream(ctx context.Context, spec CommandSpec) (<-chan OutputChunk, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Env = mergedEnviron(spec.Env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Path: spec.Path, Err: err}
	}

	chunks := make(chan OutputChunk)
	var wg sync.WaitGroup
	wg.Add(2)
	go pipeChunks(ctx, &wg, stdout, false, chunks)
	go pipeChunks(ctx, &wg, stderr, true, chunks)

	go func() {
		wg.Wait()
		// Reap the child; the exit status is intentionally not surfaced
		// on the channel.
		_ = cmd.Wait()
		close(chunks)
	}()

	return chunks, nil
}

// pipeChunks reads one pipe line by line and forwards each line as a
// chunk. Accumulation stops at line boundaries only; no further
// buffering or reordering.
func pipeChunks(ctx context.Context, wg *sync.WaitGroup, pipe io.Reader, isStderr bool, chunks chan<- OutputChunk) {
	defer wg.Done()
	scanner := bufio.NewScanner(pipe)
	// Enlarge the buffer: brew prints very long caveat and URL lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		select {
		case chunks <- OutputChunk{Text: scanner.Text() + "\n", IsStderr: isStderr}:
		case <-ctx.Done():
			return
		}
	}
}
