package models

import "time"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState selects a time-window or status filter when listing bookings.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

func (s BookingState) Valid() bool {
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return true
	}
	return false
}

type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Start     time.Time     `gorm:"column:start_date;not null" json:"start"`
	End       time.Time     `gorm:"column:end_date;not null;check:chk_bookings_dates,end_date > start_date" json:"end"`
	ItemID    uint          `gorm:"not null;index" json:"itemId"`
	BookerID  uint          `gorm:"not null;index" json:"bookerId"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'WAITING'" json:"status"`
	CreatedAt time.Time     `json:"-"`
	UpdatedAt time.Time     `json:"-"`

	Item   *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:BookerID" json:"booker,omitempty"`
}
