package models

import (
	"time"
)

type AccountType string

const (
	AccountTypePersonal     AccountType = "PERSONAL"
	AccountTypeAcademic     AccountType = "ACADEMIC"
	AccountTypeProfessional AccountType = "PROFESSIONAL"
)

// Location is an optional lat/lng pair on a user profile.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"uniqueIndex;not null" json:"username"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	Password     string      `gorm:"not null" json:"-"` // Hash
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	ProfilePhoto string      `json:"profile_photo"`
	Biography    string      `gorm:"size:200" json:"biography"`
	AccountType  AccountType `gorm:"type:varchar(20);default:'PERSONAL'" json:"account_type"`
	Location     Location    `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Joined       time.Time   `gorm:"autoCreateTime" json:"joined"`
}
