package models

type Item struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:1024;not null" json:"description"`
	Available   bool   `gorm:"not null" json:"available"`
	OwnerID     uint   `gorm:"not null;index" json:"ownerId"`
	RequestID   *uint  `gorm:"index" json:"requestId,omitempty"`

	Owner   *User        `gorm:"foreignKey:OwnerID" json:"-"`
	Request *ItemRequest `gorm:"foreignKey:RequestID" json:"-"`
}
