package models

import "time"

type Address struct {
	Street  string `gorm:"size:150" bson:"street" json:"street"`
	City    string `gorm:"size:100" bson:"city" json:"city"`
	State   string `gorm:"size:100" bson:"state" json:"state"`
	ZipCode string `gorm:"size:20" bson:"zipCode" json:"zipCode"`
	Country string `gorm:"size:100" bson:"country" json:"country"`
}

// Service is a priced offering embedded in a salon document.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Duration    int     `bson:"duration" json:"duration"`
	Price       float64 `bson:"price" json:"price"`
}

type WorkingHours struct {
	Day      string `bson:"day" json:"day"`
	Open     string `bson:"open" json:"open"`
	Close    string `bson:"close" json:"close"`
	IsClosed bool   `bson:"isClosed" json:"isClosed"`
}

type Salon struct {
	ID      string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	OwnerID string `gorm:"type:uuid;index" bson:"owner" json:"owner"`

	Name          string  `gorm:"size:150;not null;index" bson:"name" json:"name"`
	Description   string  `gorm:"type:text" bson:"description" json:"description"`
	Address       Address `gorm:"embedded;embeddedPrefix:address_" bson:"address" json:"address"`
	ContactNumber string  `gorm:"size:30" bson:"contactNumber" json:"contactNumber"`
	Email         string  `gorm:"size:100" bson:"email" json:"email"`

	Images       []string       `gorm:"type:jsonb;serializer:json" bson:"images" json:"images"`
	Services     []Service      `gorm:"type:jsonb;serializer:json" bson:"services" json:"services"`
	WorkingHours []WorkingHours `gorm:"type:jsonb;serializer:json" bson:"workingHours" json:"workingHours"`

	Rating     float64 `gorm:"default:0" bson:"rating" json:"rating"`
	NumReviews int     `gorm:"default:0" bson:"numReviews" json:"numReviews"`
	IsVerified bool    `gorm:"default:false" bson:"isVerified" json:"isVerified"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
