package queries

import (
	"errors"

	"github.com/danuarts/ridehail/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// DeleteRide removes a ride and its events in one transaction.
func DeleteRide(db *gorm.DB, rideID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ride_id = ?", rideID).
			Delete(&models.RideEvent{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", rideID).Delete(&models.Ride{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRideNotFound
		}
		return nil
	})
}

// DeleteUser removes a user together with every ride that references them
// as rider or driver, and those rides' events. The cascade is explicit and
// transactional: either all dependents go, or nothing does.
func DeleteUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		rideIDs := tx.Model(&models.Ride{}).
			Select("id").
			Where("rider_id = ? OR driver_id = ?", userID, userID)

		if err := tx.Where("ride_id IN (?)", rideIDs).
			Delete(&models.RideEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rider_id = ? OR driver_id = ?", userID, userID).
			Delete(&models.Ride{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
