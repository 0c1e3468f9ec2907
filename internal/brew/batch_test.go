package brew

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(chunks <-chan OutputChunk) []OutputChunk {
	var out []OutputChunk
	for chunk := range chunks {
		out = append(out, chunk)
	}
	return out
}

func TestSequencePlainPartialFailureIsolation(t *testing.T) {
	var attempted []string
	op := func(ctx context.Context, name string) error {
		attempted = append(attempted, name)
		if name == "b" {
			return errors.New("keg is locked")
		}
		return nil
	}

	chunks := collect(SequencePlain(context.Background(), "Uninstalling", []string{"a", "b", "c"}, op))

	// Item 2 failing must not stop item 3.
	assert.Equal(t, []string{"a", "b", "c"}, attempted)

	var failures, successes int
	for _, chunk := range chunks {
		if strings.HasPrefix(chunk.Text, "Error:") {
			failures++
			assert.True(t, chunk.IsStderr)
			assert.Contains(t, chunk.Text, "b")
		}
		if strings.HasSuffix(chunk.Text, ": done\n") {
			successes++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, 2, successes)
}

func TestSequenceStreamBannersAndOrder(t *testing.T) {
	op := func(ctx context.Context, name string) (<-chan OutputChunk, error) {
		ch := make(chan OutputChunk, 2)
		ch <- OutputChunk{Text: name + " step 1\n"}
		ch <- OutputChunk{Text: name + " step 2\n"}
		close(ch)
		return ch, nil
	}

	chunks := collect(SequenceStream(context.Background(), "Installing", []string{"x", "y"}, op))

	var texts []string
	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)
	}
	assert.Equal(t, []string{
		"==> Installing x (1/2)\n",
		"x step 1\n",
		"x step 2\n",
		"==> Installing y (2/2)\n",
		"y step 1\n",
		"y step 2\n",
	}, texts)
}

func TestSequenceStreamLaunchFailureContinues(t *testing.T) {
	op := func(ctx context.Context, name string) (<-chan OutputChunk, error) {
		if name == "bad" {
			return nil, &LaunchError{Path: "brew", Err: errors.New("not found")}
		}
		ch := make(chan OutputChunk, 1)
		ch <- OutputChunk{Text: name + " ok\n"}
		close(ch)
		return ch, nil
	}

	chunks := collect(SequenceStream(context.Background(), "Installing", []string{"bad", "good"}, op))

	joined := ""
	for _, chunk := range chunks {
		joined += chunk.Text
	}
	assert.Contains(t, joined, "Error: bad:")
	assert.Contains(t, joined, "good ok")
}

func TestSequenceStreamSequentialNotConcurrent(t *testing.T) {
	running := 0
	op := func(ctx context.Context, name string) (<-chan OutputChunk, error) {
		running++
		assert.Equal(t, 1, running, "operations must not overlap")
		ch := make(chan OutputChunk)
		go func() {
			ch <- OutputChunk{Text: fmt.Sprintf("%s working\n", name)}
			running--
			close(ch)
		}()
		return ch, nil
	}

	collect(SequenceStream(context.Background(), "Upgrading", []string{"a", "b", "c"}, op))
}

func TestSequencePlainCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	op := func(ctx context.Context, name string) error {
		calls++
		if calls == 1 {
			cancel()
		}
		return nil
	}

	chunks := SequencePlain(ctx, "Uninstalling", []string{"a", "b", "c"}, op)
	collect(chunks)
	assert.Less(t, calls, 3, "cancellation must stop the batch early")
}
