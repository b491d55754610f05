package models

import (
	"time"
)

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_tuit_like" json:"user_id"`
	TuitID    uint      `gorm:"not null;index;uniqueIndex:idx_user_tuit_like" json:"tuit_id"`
	LikedBy   User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"liked_by"`
	Tuit      Tuit      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tuit"`
	CreatedAt time.Time `json:"created_at"`
}
