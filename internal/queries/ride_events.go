package queries

import (
	"errors"
	"time"

	"github.com/danuarts/ridehail/internal/models"
	"github.com/danuarts/ridehail/internal/validators"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRideEventCap bounds how many events a single ride may accumulate.
const DefaultRideEventCap = 1000

var (
	ErrRideNotFound        = errors.New("ride not found")
	ErrRideEventCapReached = errors.New("ride event cap reached")
)

// AppendRideEvent appends an event to a ride, enforcing the per-ride cap.
// Existence check, count check and insert run in one transaction that first
// touches the ride row: the row lock this takes serialises concurrent
// appenders on the same ride, so the fresh count behind it cannot go stale
// and the cap cannot be exceeded. Exceeding the cap is a rejection, never a
// silent drop.
func AppendRideEvent(db *gorm.DB, rideID uuid.UUID, description string, maxEvents int) (*models.RideEvent, error) {
	trimmed, verrs := validators.ValidateRideEventDescription(description)
	if verrs != nil {
		return nil, verrs
	}
	if maxEvents <= 0 {
		maxEvents = DefaultRideEventCap
	}

	var event models.RideEvent
	err := db.Transaction(func(tx *gorm.DB) error {
		locked := tx.Model(&models.Ride{}).
			Where("id = ?", rideID).
			Update("updated_at", time.Now().UTC())
		if locked.Error != nil {
			return locked.Error
		}
		if locked.RowsAffected == 0 {
			return ErrRideNotFound
		}

		var total int64
		if err := tx.Model(&models.RideEvent{}).
			Where("ride_id = ?", rideID).
			Count(&total).Error; err != nil {
			return err
		}
		if total >= int64(maxEvents) {
			return ErrRideEventCapReached
		}

		event = models.RideEvent{RideID: rideID, Description: trimmed}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}
