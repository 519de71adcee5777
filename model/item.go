package model

import "time"

// Item is a single tracked possession.
// ID is assigned on insert and never changes; every other field is
// mutable through an update. Category references Category.Name, not its ID.
type Item struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:128;not null;index" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	Category    string    `gorm:"size:128;index" json:"category"`
	ImagePath   string    `gorm:"size:512" json:"image_path"` // opaque media-store path, empty = no image
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
