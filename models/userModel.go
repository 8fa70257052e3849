package models

import (
	"time"
)

// User is a registered clinic. No credential is stored.
type User struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	Email      string    `gorm:"size:255;not null;uniqueIndex;column:email" json:"email"`
	ClinicName string    `gorm:"size:255;not null;column:clinic_name" json:"clinic_name"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// ActiveSession is the single persisted session slot.
type ActiveSession struct {
	Slot  string `gorm:"primaryKey;size:32;column:slot"`
	Token string `gorm:"type:text;not null;column:token"`
}

func (ActiveSession) TableName() string {
	return "active_session"
}
