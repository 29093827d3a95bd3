package validators

import (
	"math"
	"strings"
	"time"

	"github.com/danuarts/ridehail/internal/models"
)

const (
	// Pickup and dropoff count as the same location when both axes differ
	// by less than this many degrees.
	CoordinateTolerance = 0.00001

	// PickupTimeGrace is how far in the past a pickup time may lie at
	// validation time before it is rejected.
	PickupTimeGrace = 5 * time.Minute

	MaxStatusLength      = 50
	MaxDescriptionLength = 255
)

// ValidateRide checks the fully-merged prospective state of a ride. Callers
// performing a partial update must merge the change set into the stored
// record first. The pickup-time grace check only runs when pickupTimeChanged
// is set, so a status-only update of an old ride is not rejected for a
// pickup time that was valid when it was written.
func ValidateRide(ride *models.Ride, rider, driver *models.User, now time.Time, pickupTimeChanged bool) ValidationErrors {
	var errs ValidationErrors

	status := strings.TrimSpace(ride.Status)
	if status == "" {
		errs = append(errs, ValidationError{Field: "status", Message: "Status must not be blank."})
	} else if len(status) > MaxStatusLength {
		errs = append(errs, ValidationError{Field: "status", Message: "Status must be at most 50 characters."})
	}

	errs = append(errs, validateLatitude("pickup_latitude", ride.PickupLatitude)...)
	errs = append(errs, validateLongitude("pickup_longitude", ride.PickupLongitude)...)
	errs = append(errs, validateLatitude("dropoff_latitude", ride.DropoffLatitude)...)
	errs = append(errs, validateLongitude("dropoff_longitude", ride.DropoffLongitude)...)

	if sameLocation(ride.PickupLatitude, ride.PickupLongitude, ride.DropoffLatitude, ride.DropoffLongitude) {
		errs = append(errs, ValidationError{
			Field:   "dropoff_latitude",
			Message: "Pickup and dropoff locations must be different.",
		})
	}

	if ride.RiderID == ride.DriverID {
		errs = append(errs, ValidationError{
			Field:   "driver_id",
			Message: "Rider and driver must be different users.",
		})
	}

	if rider != nil && rider.Role != models.RoleRider {
		errs = append(errs, ValidationError{
			Field:   "rider_id",
			Message: "Assigned rider must have the rider role.",
		})
	}
	if driver != nil && driver.Role != models.RoleDriver {
		errs = append(errs, ValidationError{
			Field:   "driver_id",
			Message: "Assigned driver must have the driver role.",
		})
	}

	if pickupTimeChanged {
		if ride.PickupTime.IsZero() {
			errs = append(errs, ValidationError{Field: "pickup_time", Message: "Pickup time is required."})
		} else if now.Sub(ride.PickupTime) > PickupTimeGrace {
			errs = append(errs, ValidationError{
				Field:   "pickup_time",
				Message: "Pickup time must not be more than 5 minutes in the past.",
			})
		}
	}

	return errs
}

// ValidateRideEventDescription trims the description and checks the
// append-only event rules. It returns the trimmed value to be stored.
func ValidateRideEventDescription(description string) (string, ValidationErrors) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", ValidationErrors{{Field: "description", Message: "Description must not be blank."}}
	}
	if len(trimmed) > MaxDescriptionLength {
		return "", ValidationErrors{{Field: "description", Message: "Description must be at most 255 characters."}}
	}
	return trimmed, nil
}

func validateLatitude(field string, value float64) ValidationErrors {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ValidationErrors{{Field: field, Message: "Latitude must be a finite number."}}
	}
	if value < -90 || value > 90 {
		return ValidationErrors{{Field: field, Message: "Latitude must be between -90 and 90 degrees."}}
	}
	return nil
}

func validateLongitude(field string, value float64) ValidationErrors {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ValidationErrors{{Field: field, Message: "Longitude must be a finite number."}}
	}
	if value < -180 || value > 180 {
		return ValidationErrors{{Field: field, Message: "Longitude must be between -180 and 180 degrees."}}
	}
	return nil
}

func sameLocation(lat1, lon1, lat2, lon2 float64) bool {
	return math.Abs(lat1-lat2) < CoordinateTolerance && math.Abs(lon1-lon2) < CoordinateTolerance
}
