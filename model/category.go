package model

// Category groups items by name. Items point at Category.Name, so the
// name carries a unique index to keep that reference unambiguous.
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:128;not null" json:"name"`
}
