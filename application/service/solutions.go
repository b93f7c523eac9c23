package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/rangemap/domain/solution"
	"github.com/helixml/rangemap/domain/store"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Solutions reads and removes stored answers.
type Solutions struct {
	store solution.Store
}

// NewSolutions creates a Solutions service. A nil store makes every
// method return ErrPersistenceDisabled.
func NewSolutions(s solution.Store) *Solutions {
	return &Solutions{store: s}
}

// List returns stored solutions, newest first.
func (s *Solutions) List(ctx context.Context, limit int) ([]solution.Solution, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	found, err := s.store.Find(ctx, solution.Newest(), store.WithOrderDesc("id"), store.WithLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	return found, nil
}

// Get returns one solution by ID.
func (s *Solutions) Get(ctx context.Context, id int64) (solution.Solution, error) {
	if s.store == nil {
		return solution.Solution{}, ErrPersistenceDisabled
	}
	sol, err := s.store.FindOne(ctx, store.WithID(id))
	if err != nil {
		return solution.Solution{}, fmt.Errorf("get solution %d: %w", id, err)
	}
	return sol, nil
}

// Forget removes every solution stored for an almanac checksum.
func (s *Solutions) Forget(ctx context.Context, checksum string) error {
	if s.store == nil {
		return ErrPersistenceDisabled
	}
	if checksum == "" {
		return errors.New("forget: empty checksum")
	}
	if err := s.store.DeleteBy(ctx, solution.WithChecksum(checksum)); err != nil {
		return fmt.Errorf("forget %s: %w", checksum, err)
	}
	return nil
}

// Delete removes one solution by ID.
func (s *Solutions) Delete(ctx context.Context, id int64) error {
	sol, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sol); err != nil {
		return fmt.Errorf("delete solution %d: %w", id, err)
	}
	return nil
}
