package repository

import "context"

// ConnectionProber checks that the primary store accepts writes.
type ConnectionProber interface {
	Probe(ctx context.Context) error
	// ClearProbes removes any probe documents left behind.
	ClearProbes(ctx context.Context) (int, error)
}
