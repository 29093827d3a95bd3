package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Observed status vocabulary. The column is free-form and no transition
// graph is enforced; these are exported for callers' convenience.
const (
	StatusRequested  = "requested"
	StatusAccepted   = "accepted"
	StatusEnRoute    = "en-route"
	StatusPickup     = "pickup"
	StatusInProgress = "in-progress"
	StatusDropoff    = "dropoff"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Ride struct {
	ID               uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Status           string      `gorm:"size:50;not null;index" json:"status"`
	RiderID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"rider_id"`
	Rider            *User       `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
	DriverID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"driver_id"`
	Driver           *User       `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	PickupLatitude   float64     `json:"pickup_latitude"`
	PickupLongitude  float64     `json:"pickup_longitude"`
	DropoffLatitude  float64     `json:"dropoff_latitude"`
	DropoffLongitude float64     `json:"dropoff_longitude"`
	PickupTime       time.Time   `gorm:"not null;index" json:"pickup_time"`
	Events           []RideEvent `gorm:"foreignKey:RideID" json:"events,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (ride *Ride) BeforeCreate(tx *gorm.DB) (err error) {
	if ride.ID == uuid.Nil {
		ride.ID = uuid.New()
	}
	return
}
