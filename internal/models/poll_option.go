package models

import (
	"time"
)

// PollOption belongs to exactly one poll tuit. The owning tuit holds no
// forward list of option ids; options are always resolved by a reverse lookup
// on TuitID, which keeps option creation a single write.
type PollOption struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TuitID     uint      `gorm:"not null;index" json:"tuit_id"`
	OptionText string    `gorm:"not null" json:"option_text"`
	NumVoted   int       `gorm:"default:0" json:"num_voted"`
	CreatedAt  time.Time `json:"created_at"`
}
