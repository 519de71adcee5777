package model

import (
	"time"

	"gorm.io/datatypes"
)

// ChangeLog records a committed mutation against a local entity.
// Entries are written asynchronously by the history service.
type ChangeLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID   string         `gorm:"index:idx_changelog_trace;size:36" json:"trace_id"`
	Entity    string         `gorm:"size:32;not null" json:"entity"` // "item" | "category"
	EntityID  int64          `gorm:"index:idx_changelog_entity" json:"entity_id"`
	Action    string         `gorm:"size:16;not null" json:"action"` // "insert" | "update" | "delete"
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `gorm:"index:idx_changelog_created;autoCreateTime:milli" json:"created_at"`
}
