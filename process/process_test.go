package process_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type completion struct {
	text string
	err  error
}

// fakeCompleter answers with the queued completions in order and records
// every prompt.
type fakeCompleter struct {
	mu      sync.Mutex
	answers []completion
	prompts []string
	params  []process.CompletionParams
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, params process.CompletionParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.params = append(f.params, params)
	if len(f.answers) == 0 {
		return "", errors.New("no answer queued")
	}
	a := f.answers[0]
	f.answers = f.answers[1:]

	return a.text, a.err
}
