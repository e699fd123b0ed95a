package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type cartEventGormRepository struct {
	db *gorm.DB
}

func NewCartEventGormRepository(db *gorm.DB) repo.CartEventRepository {
	return &cartEventGormRepository{db: db}
}

func (r *cartEventGormRepository) Create(ctx context.Context, ev model.CartEvent) error {
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return err
	}
	return nil
}

func (r *cartEventGormRepository) List(ctx context.Context, filter repo.CartEventFilter) ([]model.CartEvent, error) {
	q := r.db.WithContext(ctx).Model(&model.CartEvent{})

	if filter.SessionID != "" {
		q = q.Where("session_id = ?", filter.SessionID)
	}
	if filter.Action != nil {
		q = q.Where("action = ?", *filter.Action)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}

	//新しい順
	q = q.Order("id DESC")

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	q = q.Limit(filter.NormalizedLimit()).Offset(offset)

	var events []model.CartEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
