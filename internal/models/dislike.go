package models

import (
	"time"
)

// Dislike 用户踩一条 tuit，(user_id, tuit_id) 唯一
type Dislike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_tuit_dislike" json:"user_id"`
	TuitID     uint      `gorm:"not null;index;uniqueIndex:idx_user_tuit_dislike" json:"tuit_id"`
	DislikedBy User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"disliked_by"`
	Tuit       Tuit      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tuit"`
	CreatedAt  time.Time `json:"created_at"`
}
