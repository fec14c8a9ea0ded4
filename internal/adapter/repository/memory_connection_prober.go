package repository

import (
	"context"

	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

type memoryConnectionProber struct{}

// NewMemoryConnectionProber reports the in-memory primary store as always reachable.
func NewMemoryConnectionProber() repository.ConnectionProber {
	return memoryConnectionProber{}
}

func (memoryConnectionProber) Probe(ctx context.Context) error {
	return nil
}

func (memoryConnectionProber) ClearProbes(ctx context.Context) (int, error) {
	return 0, nil
}
