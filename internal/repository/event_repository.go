package repository

import (
	"fmt"

	"gorm.io/gorm"

	"analogygen/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *model.GenerationEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create generation event failed: %w", err)
	}
	return nil
}
