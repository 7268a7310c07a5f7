// Package fallback provides an ordered chain of alternative operations
// tried in sequence until one succeeds or all are exhausted.
package fallback

import (
	"context"
	"fmt"
)

// Candidate is a single named alternative in a chain.
type Candidate[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Chain tries candidates in order and returns the first successful value.
// On total failure it returns the last candidate's error, wrapped with the
// candidate name. An empty chain is a programming error and panics.
func Chain[T any](ctx context.Context, candidates []Candidate[T]) (T, error) {
	if len(candidates) == 0 {
		panic("fallback: empty chain")
	}
	var zero T
	var lastErr error
	var lastName string
	for _, c := range candidates {
		v, err := c.Run(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		lastName = c.Name
		if ctx.Err() != nil {
			break
		}
	}
	return zero, fmt.Errorf("%s: %w", lastName, lastErr)
}
