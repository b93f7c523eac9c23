package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/rangemap/domain/solution"
	"github.com/helixml/rangemap/internal/database"
	"gorm.io/gorm"
)

// SolutionStore implements solution.Store using GORM.
type SolutionStore struct {
	database.Repository[solution.Solution, SolutionModel]
}

// NewSolutionStore creates a new SolutionStore.
func NewSolutionStore(db database.Database) SolutionStore {
	return SolutionStore{
		Repository: database.NewRepository[solution.Solution, SolutionModel](db, SolutionMapper{}, "solution"),
	}
}

// Save stores a solution. A new solution replaces any stored one with the
// same checksum and mode.
func (s SolutionStore) Save(ctx context.Context, sol solution.Solution) (solution.Solution, error) {
	model := s.Mapper().ToModel(sol)

	err := database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		if model.ID == 0 {
			result := tx.Where("checksum = ? AND mode = ?", model.Checksum, model.Mode).Delete(&SolutionModel{})
			if result.Error != nil {
				return fmt.Errorf("replace solution: %w", result.Error)
			}
			return tx.Create(&model).Error
		}
		return tx.Save(&model).Error
	})
	if err != nil {
		return solution.Solution{}, fmt.Errorf("save solution: %w", err)
	}

	return s.Mapper().ToDomain(model), nil
}

var _ solution.Store = SolutionStore{}
