package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry backs the flat key-value namespace all entitlement records live in.
// Rows are hard-deleted; a soft-delete column would collide with the unique
// key index when a record is recreated.
type KVEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex"`
	Value     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetMember is one element of a named set (account roster, global IP set,
// coupon index). Membership is enforced by the composite unique index so that
// add/remove are atomic row operations instead of whole-list rewrites.
type SetMember struct {
	ID        uint   `gorm:"primaryKey"`
	SetKey    string `gorm:"uniqueIndex:idx_set_member"`
	Member    string `gorm:"uniqueIndex:idx_set_member"`
	CreatedAt time.Time
}
