package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

type BookingInput struct {
	ItemID uint
	Start  *time.Time
	End    *time.Time
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID uint, in BookingInput) (*models.Booking, error)
	ApproveBooking(ctx context.Context, userID, bookingID uint, approved bool) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	ListBookerBookings(ctx context.Context, userID uint, state string) ([]models.Booking, error)
	ListOwnerBookings(ctx context.Context, userID uint, state string) ([]models.Booking, error)
}

type bookingService struct {
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewBookingService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	bookingRepo repository.BookingRepository,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
		now:         utcNow,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, bookerID uint, in BookingInput) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Booker and item must exist
		if err := requireUser(ctx, s.userRepo, tx, bookerID); err != nil {
			return err
		}
		item, err := s.itemRepo.FindByID(ctx, tx, in.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return itemNotFound(in.ItemID)
			}
			return err
		}

		// 2. Owners cannot book their own items
		if item.OwnerID == bookerID {
			return notFound("owner of item %d cannot book it", item.ID)
		}

		// 3. Availability, then the date range
		if !item.Available {
			return validation("item %d is not available for booking", item.ID)
		}
		if in.Start == nil || in.End == nil {
			return validation("booking start and end must be set")
		}
		start, end := in.Start.UTC(), in.End.UTC()
		if start.Before(s.now()) {
			return validation("booking start must not be in the past")
		}
		if !end.After(start) {
			return validation("booking end must be after its start")
		}

		booking := &models.Booking{
			Start:    start,
			End:      end,
			ItemID:   item.ID,
			BookerID: bookerID,
			Status:   models.StatusWaiting,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		result, err = s.bookingRepo.FindByID(ctx, tx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created", "booking_id", result.ID, "item_id", result.ItemID, "booker_id", bookerID)
	publish(s.publisher, EventBookingCreated, result)
	return result, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, userID, bookingID uint, approved bool) (*models.Booking, error) {
	var result *models.Booking

	status := models.StatusRejected
	if approved {
		status = models.StatusApproved
	}

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the booking row; concurrent decisions queue here
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bookingNotFound(bookingID)
			}
			return err
		}

		// 2. Only the item owner decides
		item, err := s.itemRepo.FindByID(ctx, tx, booking.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID != userID {
			return forbidden("user %d is not the owner of item %d", userID, item.ID)
		}

		// 3. WAITING is the only state with a way out
		if booking.Status != models.StatusWaiting {
			return alreadyDecided(bookingID)
		}
		n, err := s.bookingRepo.UpdateStatusIfWaiting(ctx, tx, bookingID, status)
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		if n == 0 {
			return alreadyDecided(bookingID)
		}

		result, err = s.bookingRepo.FindByID(ctx, tx, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking decided", "booking_id", bookingID, "status", status)
	if approved {
		publish(s.publisher, EventBookingApproved, result)
	} else {
		publish(s.publisher, EventBookingRejected, result)
	}
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, s.bookingRepo.GetDB(), bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingNotFound(bookingID)
		}
		return nil, err
	}

	if booking.BookerID != userID && booking.Item.OwnerID != userID {
		return nil, notFound("user %d has no access to booking %d", userID, bookingID)
	}
	return booking, nil
}

func (s *bookingService) ListBookerBookings(ctx context.Context, userID uint, state string) ([]models.Booking, error) {
	if err := requireUser(ctx, s.userRepo, s.userRepo.GetDB(), userID); err != nil {
		return nil, err
	}
	st, err := parseState(state)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByBookerID(ctx, userID, st, s.now())
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, userID uint, state string) ([]models.Booking, error) {
	if err := requireUser(ctx, s.userRepo, s.userRepo.GetDB(), userID); err != nil {
		return nil, err
	}

	// No items means no bookings; the state is not looked at.
	hasItems, err := s.itemRepo.ExistsByOwnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasItems {
		return []models.Booking{}, nil
	}

	st, err := parseState(state)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByOwnerID(ctx, userID, st, s.now())
}

func parseState(state string) (models.BookingState, error) {
	st := models.BookingState(state)
	if !st.Valid() {
		return "", validation("Unknown state: %s", state)
	}
	return st, nil
}

func bookingNotFound(id uint) error {
	return notFound("booking with id %d not found", id)
}

func alreadyDecided(id uint) error {
	return validation("booking %d has already been approved or rejected", id)
}
