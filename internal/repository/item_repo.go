package repository

import (
	"context"
	"strings"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *models.Item) error
	Update(ctx context.Context, tx *gorm.DB, item *models.Item) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Item, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]models.Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []uint) ([]models.Item, error)
	ExistsByOwnerID(ctx context.Context, ownerID uint) (bool, error)
	Search(ctx context.Context, text string) ([]models.Item, error)
	GetDB() *gorm.DB
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *itemRepository) Create(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	return tx.WithContext(ctx).Create(item).Error
}

// Update writes the mutable columns only; owner and request links never change.
func (r *itemRepository) Update(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	return tx.WithContext(ctx).
		Model(item).
		Select("name", "description", "available").
		Updates(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Item, error) {
	var item models.Item
	if err := tx.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByRequestIDs(ctx context.Context, requestIDs []uint) ([]models.Item, error) {
	if len(requestIDs) == 0 {
		return []models.Item{}, nil
	}
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ExistsByOwnerID(ctx context.Context, ownerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count > 0, err
}

// Search matches text case-insensitively against name or description of available items.
func (r *itemRepository) Search(ctx context.Context, text string) ([]models.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
