package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

type ItemInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *uint
}

// ItemPatch carries the fields of a partial update. Nil means unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDetails is an item with its comments and, for the owner, the
// surrounding approved bookings.
type ItemDetails struct {
	models.Item
	LastBooking *models.Booking
	NextBooking *models.Booking
	Comments    []models.Comment
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID uint, in ItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, userID, itemID uint, patch ItemPatch) (*models.Item, error)
	GetItem(ctx context.Context, itemID, userID uint) (*ItemDetails, error)
	ListOwnerItems(ctx context.Context, ownerID uint) ([]ItemDetails, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
}

type itemService struct {
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	requestRepo repository.RequestRepository
	bookingRepo repository.BookingRepository
	commentRepo repository.CommentRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewItemService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
	bookingRepo repository.BookingRepository,
	commentRepo repository.CommentRepository,
	publisher EventPublisher,
) ItemService {
	return &itemService{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
		now:         utcNow,
	}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID uint, in ItemInput) (*models.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validation("item name must not be blank")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, validation("item description must not be blank")
	}
	if in.Available == nil {
		return nil, validation("item availability must be set")
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}

	err := s.itemRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(ctx, s.userRepo, tx, ownerID); err != nil {
			return err
		}
		if in.RequestID != nil {
			exists, err := s.requestRepo.ExistsByID(ctx, tx, *in.RequestID)
			if err != nil {
				return err
			}
			if !exists {
				return requestNotFound(*in.RequestID)
			}
		}

		if err := s.itemRepo.Create(ctx, tx, item); err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("item created", "item_id", item.ID, "owner_id", ownerID)
	publish(s.publisher, EventItemCreated, item)
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, userID, itemID uint, patch ItemPatch) (*models.Item, error) {
	var result *models.Item

	err := s.itemRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.findItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.OwnerID != userID {
			return notFound("user %d is not the owner of item %d", userID, itemID)
		}

		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.Available != nil {
			item.Available = *patch.Available
		}

		if err := s.itemRepo.Update(ctx, tx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("item updated", "item_id", itemID)
	publish(s.publisher, EventItemUpdated, result)
	return result, nil
}

func (s *itemService) GetItem(ctx context.Context, itemID, userID uint) (*ItemDetails, error) {
	item, err := s.findItem(ctx, s.itemRepo.GetDB(), itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.attachDetails(ctx, []models.Item{*item}, item.OwnerID == userID)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *itemService) ListOwnerItems(ctx context.Context, ownerID uint) ([]ItemDetails, error) {
	if err := requireUser(ctx, s.userRepo, s.userRepo.GetDB(), ownerID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.attachDetails(ctx, items, true)
}

func (s *itemService) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.itemRepo.Search(ctx, text)
}

// attachDetails loads comments, and bookings when withBookings is set, for
// all items at once.
func (s *itemService) attachDetails(ctx context.Context, items []models.Item, withBookings bool) ([]ItemDetails, error) {
	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	comments, err := s.commentRepo.FindByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[uint][]models.Comment, len(items))
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}

	var last, next map[uint]models.Booking
	if withBookings {
		now := s.now()
		if last, err = s.bookingRepo.FindLastByItemIDs(ctx, ids, now); err != nil {
			return nil, err
		}
		if next, err = s.bookingRepo.FindNextByItemIDs(ctx, ids, now); err != nil {
			return nil, err
		}
	}

	result := make([]ItemDetails, len(items))
	for i, it := range items {
		d := ItemDetails{Item: it, Comments: byItem[it.ID]}
		if d.Comments == nil {
			d.Comments = []models.Comment{}
		}
		if b, ok := last[it.ID]; ok {
			d.LastBooking = &b
		}
		if b, ok := next[it.ID]; ok {
			d.NextBooking = &b
		}
		result[i] = d
	}
	return result, nil
}

func (s *itemService) findItem(ctx context.Context, tx *gorm.DB, id uint) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itemNotFound(id)
		}
		return nil, err
	}
	return item, nil
}

func requireUser(ctx context.Context, repo repository.UserRepository, tx *gorm.DB, id uint) error {
	exists, err := repo.ExistsByID(ctx, tx, id)
	if err != nil {
		return err
	}
	if !exists {
		return userNotFound(id)
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
