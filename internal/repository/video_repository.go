package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vidshare/internal/model"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(video *model.Video) error {
	if err := r.db.Create(video).Error; err != nil {
		return fmt.Errorf("create video failed: %w", err)
	}
	return nil
}

// ListNewestFirst returns the whole catalog ordered by creation time,
// newest first.
func (r *VideoRepository) ListNewestFirst() ([]model.Video, error) {
	var videos []model.Video
	if err := r.db.Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("list videos failed: %w", err)
	}
	return videos, nil
}

func (r *VideoRepository) GetByID(id uint) (*model.Video, error) {
	var video model.Video
	if err := r.db.First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query video by id failed: %w", err)
	}
	return &video, nil
}

func (r *VideoRepository) IncrementViews(id uint) error {
	err := r.db.Model(&model.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("increment video views failed: %w", err)
	}
	return nil
}
