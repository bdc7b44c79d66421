package repository

import (
	"context"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, req *models.ItemRequest) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ItemRequest, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	FindByRequestorID(ctx context.Context, requestorID uint) ([]models.ItemRequest, error)
	FindByOtherRequestors(ctx context.Context, userID uint) ([]models.ItemRequest, error)
	GetDB() *gorm.DB
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *requestRepository) Create(ctx context.Context, tx *gorm.DB, req *models.ItemRequest) error {
	return tx.WithContext(ctx).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ItemRequest, error) {
	var req models.ItemRequest
	if err := tx.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.ItemRequest{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *requestRepository) FindByRequestorID(ctx context.Context, requestorID uint) ([]models.ItemRequest, error) {
	return r.find(ctx, "requestor_id = ?", requestorID)
}

// FindByOtherRequestors lists requests created by anyone but userID.
func (r *requestRepository) FindByOtherRequestors(ctx context.Context, userID uint) ([]models.ItemRequest, error) {
	return r.find(ctx, "requestor_id <> ?", userID)
}

func (r *requestRepository) find(ctx context.Context, query string, userID uint) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := r.db.WithContext(ctx).
		Where(query, userID).
		Order("created DESC, id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
