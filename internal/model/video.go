package model

import "time"

type Video struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Filename  string    `gorm:"size:300;not null" json:"filename"`
	Views     uint64    `gorm:"not null;default:0" json:"views"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
