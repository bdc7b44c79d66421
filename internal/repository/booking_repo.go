package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	UpdateStatusIfWaiting(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) (int64, error)
	FindByBookerID(ctx context.Context, bookerID uint, state models.BookingState, now time.Time) ([]models.Booking, error)
	FindByOwnerID(ctx context.Context, ownerID uint, state models.BookingState, now time.Time) ([]models.Booking, error)
	FindLastByItemIDs(ctx context.Context, itemIDs []uint, now time.Time) (map[uint]models.Booking, error)
	FindNextByItemIDs(ctx context.Context, itemIDs []uint, now time.Time) (map[uint]models.Booking, error)
	ExistsCompleted(ctx context.Context, tx *gorm.DB, bookerID, itemID uint, now time.Time) (bool, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

// FindByID loads the booking together with its item and booker.
func (r *bookingRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the booking row until tx ends.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatusIfWaiting moves a WAITING booking to status and reports the rows changed.
// Zero means someone else already decided it.
func (r *bookingRepository) UpdateStatusIfWaiting(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.StatusWaiting).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) FindByBookerID(ctx context.Context, bookerID uint, state models.BookingState, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Scopes(inState(state, now)).
		Where("bookings.booker_id = ?", bookerID).
		Order("bookings.start_date DESC, bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByOwnerID(ctx context.Context, ownerID uint, state models.BookingState, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Scopes(inState(state, now)).
		Where("items.owner_id = ?", ownerID).
		Order("bookings.start_date DESC, bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindLastByItemIDs returns, per item, the approved booking already started with the latest end.
func (r *bookingRepository) FindLastByItemIDs(ctx context.Context, itemIDs []uint, now time.Time) (map[uint]models.Booking, error) {
	return r.firstPerItem(ctx, itemIDs, "start_date < ?", now, "end_date DESC, id DESC")
}

// FindNextByItemIDs returns, per item, the approved booking starting soonest after now.
func (r *bookingRepository) FindNextByItemIDs(ctx context.Context, itemIDs []uint, now time.Time) (map[uint]models.Booking, error) {
	return r.firstPerItem(ctx, itemIDs, "start_date > ?", now, "start_date ASC, id ASC")
}

func (r *bookingRepository) firstPerItem(ctx context.Context, itemIDs []uint, cond string, now time.Time, order string) (map[uint]models.Booking, error) {
	result := make(map[uint]models.Booking, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("item_id IN ? AND status = ?", itemIDs, models.StatusApproved).
		Where(cond, now).
		Order(order).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		if _, seen := result[b.ItemID]; !seen {
			result[b.ItemID] = b
		}
	}
	return result, nil
}

// ExistsCompleted reports whether bookerID has an approved booking of itemID that ended before now.
func (r *bookingRepository) ExistsCompleted(ctx context.Context, tx *gorm.DB, bookerID, itemID uint, now time.Time) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND end_date < ?", bookerID, itemID, models.StatusApproved, now).
		Count(&count).Error
	return count > 0, err
}

func inState(state models.BookingState, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case models.StateCurrent:
			return db.Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now)
		case models.StatePast:
			return db.Where("bookings.end_date < ?", now)
		case models.StateFuture:
			return db.Where("bookings.start_date > ?", now)
		case models.StateWaiting:
			return db.Where("bookings.status = ?", models.StatusWaiting)
		case models.StateRejected:
			return db.Where("bookings.status = ?", models.StatusRejected)
		default:
			return db
		}
	}
}
