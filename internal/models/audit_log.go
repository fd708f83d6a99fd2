package models

import "time"

type AuditLog struct {
	ID string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`

	ActorID  string `gorm:"size:36;index" bson:"actor,omitempty" json:"actor,omitempty"`
	Action   string `gorm:"size:50;not null" bson:"action" json:"action"`
	Entity   string `gorm:"size:50" bson:"entity" json:"entity"`
	EntityID string `gorm:"size:36" bson:"entityId" json:"entityId"`
	Metadata string `gorm:"type:text" bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
