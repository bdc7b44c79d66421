package repository

import (
	"context"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, comment *models.Comment) error
	FindByItemIDs(ctx context.Context, itemIDs []uint) ([]models.Comment, error)
	GetDB() *gorm.DB
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *commentRepository) Create(ctx context.Context, tx *gorm.DB, comment *models.Comment) error {
	return tx.WithContext(ctx).Create(comment).Error
}

// FindByItemIDs loads comments with their authors, oldest first.
func (r *commentRepository) FindByItemIDs(ctx context.Context, itemIDs []uint) ([]models.Comment, error) {
	if len(itemIDs) == 0 {
		return []models.Comment{}, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
