package region

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Writer prints every state of a region to w, one block per state. It is
// the region the command line tools render into.
type Writer struct {
	mu    sync.Mutex
	inner Memory
	w     io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (r *Writer) Begin(ctx context.Context, placeholder string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, _ := r.inner.Begin(ctx, placeholder)
	if _, err := fmt.Fprintln(r.w, placeholder); err != nil {
		return 0, fmt.Errorf("write placeholder failed: %w", err)
	}
	return token, nil
}

func (r *Writer) Commit(ctx context.Context, token uint64, content string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok, _ := r.inner.Commit(ctx, token, content)
	if !ok {
		return false, nil
	}
	if _, err := fmt.Fprintln(r.w, content); err != nil {
		return true, fmt.Errorf("write region content failed: %w", err)
	}
	return true, nil
}

func (r *Writer) Get(ctx context.Context) (string, error) {
	return r.inner.Get(ctx)
}
