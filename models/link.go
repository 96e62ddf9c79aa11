package models

import "time"

// Link is an outbound link on a profile page.
type Link struct {
	ID         string `gorm:"primaryKey;size:36"`
	ProfileID  string `gorm:"size:36;not null;index"`
	Title      string
	URL        string `gorm:"size:2083;not null"`
	ClickCount uint   `gorm:"default:0"`
	CreatedAt  time.Time
	DeletedAt  *time.Time
	Profile    Profile `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
