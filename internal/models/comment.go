package models

import "time"

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"size:2048;not null" json:"text"`
	ItemID   uint      `gorm:"not null;index" json:"itemId"`
	AuthorID uint      `gorm:"not null" json:"authorId"`
	Created  time.Time `gorm:"not null" json:"created"`

	Item   *Item `gorm:"foreignKey:ItemID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}
