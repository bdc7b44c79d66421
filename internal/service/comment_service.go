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

type CommentService interface {
	CreateComment(ctx context.Context, authorID, itemID uint, text string) (*models.Comment, error)
}

type commentService struct {
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	bookingRepo repository.BookingRepository
	commentRepo repository.CommentRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewCommentService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	bookingRepo repository.BookingRepository,
	commentRepo repository.CommentRepository,
	publisher EventPublisher,
) CommentService {
	return &commentService{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
		now:         utcNow,
	}
}

// CreateComment requires the author to have finished an approved rental of the item.
func (s *commentService) CreateComment(ctx context.Context, authorID, itemID uint, text string) (*models.Comment, error) {
	var comment *models.Comment

	err := s.commentRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := s.userRepo.FindByID(ctx, tx, authorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return userNotFound(authorID)
			}
			return err
		}
		item, err := s.itemRepo.FindByID(ctx, tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return itemNotFound(itemID)
			}
			return err
		}

		now := s.now()
		rented, err := s.bookingRepo.ExistsCompleted(ctx, tx, authorID, item.ID, now)
		if err != nil {
			return err
		}
		if !rented {
			return validation("user %d has not completed a rental of item %d", authorID, itemID)
		}
		if strings.TrimSpace(text) == "" {
			return validation("comment text must not be blank")
		}

		comment = &models.Comment{
			Text:     text,
			ItemID:   itemID,
			AuthorID: authorID,
			Created:  now,
		}
		if err := s.commentRepo.Create(ctx, tx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		comment.Author = author
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("comment created", "comment_id", comment.ID, "item_id", itemID, "author_id", authorID)
	publish(s.publisher, EventCommentCreated, comment)
	return comment, nil
}
