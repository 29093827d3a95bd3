package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RideEvent is an append-only annotation on a ride. CreatedAt is assigned
// server-side and is never accepted from a request body.
type RideEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RideID      uuid.UUID `gorm:"type:uuid;not null;index:idx_ride_events_ride_created" json:"ride_id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	CreatedAt   time.Time `gorm:"index:idx_ride_events_ride_created" json:"created_at"`
}

func (event *RideEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
