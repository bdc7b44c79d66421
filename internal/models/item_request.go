package models

import "time"

type ItemRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:1024;not null" json:"description"`
	RequestorID uint      `gorm:"not null;index" json:"requestorId"`
	Created     time.Time `gorm:"not null" json:"created"`

	Requestor *User `gorm:"foreignKey:RequestorID" json:"-"`
}
