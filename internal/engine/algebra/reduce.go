package algebra

import (
	"github.com/dshills/selkit/internal/engine/selection"
	"github.com/dshills/selkit/internal/failure"
)

// Join reduces sels to their bounding selection.
func Join(sels []selection.Span) (selection.Span, error) {
	env, ok := selection.Bounding(sels)
	if !ok {
		return selection.Span{}, failure.Usage("join", "selection is empty")
	}
	return env, nil
}

// KeepEvery splits items into consecutive chunks of n and keeps the first
// element of each chunk.
func KeepEvery[T any](items []T, n int) ([]T, error) {
	if n < 2 {
		return nil, failure.Usage("keep-every", "chunk size must be at least 2, got %d", n)
	}
	out := make([]T, 0, (len(items)+n-1)/n)
	for i := 0; i < len(items); i += n {
		out = append(out, items[i])
	}
	return out, nil
}
