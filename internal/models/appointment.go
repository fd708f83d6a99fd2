package models

import "time"

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`

	UserID    string `gorm:"type:uuid;index;not null" bson:"user" json:"user"`
	SalonID   string `gorm:"type:uuid;index;not null" bson:"salon" json:"salon"`
	ServiceID string `gorm:"size:36;not null" bson:"service" json:"service"`

	Date      time.Time `gorm:"type:date;index;not null" bson:"date" json:"date"`
	StartTime string    `gorm:"size:5;not null" bson:"startTime" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" bson:"endTime" json:"endTime"`

	Status     string  `gorm:"size:20;default:'Pending'" bson:"status" json:"status"`
	Notes      string  `gorm:"type:text" bson:"notes,omitempty" json:"notes,omitempty"`
	TotalPrice float64 `gorm:"not null;default:0" bson:"totalPrice" json:"totalPrice"`
	Version    int     `gorm:"not null;default:1" bson:"version" json:"-"`

	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
