package models

import "time"

type User struct {
	ID           string  `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	Name         string  `gorm:"size:100;not null" bson:"name" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string  `gorm:"size:255" bson:"passwordHash,omitempty" json:"-"`
	PhoneNumber  string  `gorm:"size:30" bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	GoogleID     *string `gorm:"size:64;uniqueIndex" bson:"googleId,omitempty" json:"-"`
	IsAdmin      bool    `gorm:"default:false" bson:"isAdmin" json:"isAdmin"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
