package models

import (
	"time"
)

// Vote records one user's choice of option on one poll. The unique index on
// (user_id, tuit_id) is what makes "at most one vote per user per poll" hold
// under concurrent requests.
type Vote struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index;uniqueIndex:idx_user_poll" json:"user_id"`
	TuitID       uint       `gorm:"not null;index;uniqueIndex:idx_user_poll" json:"tuit_id"`
	PollOptionID uint       `gorm:"not null;index" json:"poll_option_id"`
	VotedBy      User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"voted_by"`
	Tuit         Tuit       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tuit"`
	VotedOption  PollOption `gorm:"foreignKey:PollOptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"voted_option"`
	CreatedAt    time.Time  `json:"created_at"`
}
