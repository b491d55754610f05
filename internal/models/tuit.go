package models

import (
	"html/template"
	"time"
)

// Stats holds the denormalized engagement counters on a tuit. The reaction
// and vote services recompute each counter from the relation table inside the
// same transaction that flips the relation row, so a stored counter always
// equals the row count it summarizes.
type Stats struct {
	Replies  int `gorm:"default:0" json:"replies"`
	Retuits  int `gorm:"default:0" json:"retuits"`
	Likes    int `gorm:"default:0" json:"likes"`
	Dislikes int `gorm:"default:0" json:"dislikes"`
}

// PollStats is derived on read, never stored. Votes is ordered like the
// poll's option list.
type PollStats struct {
	Votes           []int `json:"votes"`
	NumParticipated int   `json:"num_participated"`
}

type Tuit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"posted_by"`
	Tuit       string    `gorm:"type:text;not null" json:"tuit"`
	IsPoll     bool      `gorm:"default:false;index" json:"is_poll"`
	IsPollOpen bool      `gorm:"default:false" json:"is_poll_open"`
	Stats      Stats     `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`
	PostedOn   time.Time `gorm:"autoCreateTime" json:"posted_on"`

	PollOptions []PollOption `gorm:"foreignKey:TuitID" json:"poll_options,omitempty"`

	// 非数据库字段，用于查询时填充
	TuitHTML  template.HTML `gorm:"-" json:"tuit_html,omitempty"`
	PollStats *PollStats    `gorm:"-" json:"poll_stats,omitempty"`
}
