package repository

import (
	"fmt"

	"gorm.io/gorm"

	"analogygen/internal/model"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(entry *model.HistoryEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create history entry failed: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's entries newest first.
func (r *HistoryRepository) ListByOwner(email string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if err := r.db.Where("owner_email = ?", email).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list history entries failed: %w", err)
	}
	return entries, nil
}

// DeleteByIDAndOwner removes the entry only when both id and owner match and
// reports how many rows went away. A missing id and a wrong owner are
// indistinguishable to the caller.
func (r *HistoryRepository) DeleteByIDAndOwner(id, email string) (int64, error) {
	result := r.db.Where("id = ? AND owner_email = ?", id, email).Delete(&model.HistoryEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete history entry failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
