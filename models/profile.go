package models

import "time"

// Profile is a public link-in-bio page. ViewCount is the lifetime total;
// per-day view counts live in DailyStat rows keyed by the profile ID.
type Profile struct {
	ID        string `gorm:"primaryKey;size:36"`
	Username  string `gorm:"unique;not null"`
	ViewCount uint   `gorm:"default:0"`
	CreatedAt time.Time
	DeletedAt *time.Time
}
