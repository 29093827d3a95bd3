package queries

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danuarts/ridehail/internal/models"
)

func TestDeleteRideCascadesEvents(t *testing.T) {
	db := newTestDB(t)
	rider := createUser(t, db, models.RoleRider)
	driver := createUser(t, db, models.RoleDriver)
	now := time.Now().UTC()

	ride := createRide(t, db, rider, driver, models.StatusCompleted, 37.7, -122.4, now)
	createEvent(t, db, ride.ID, "ride completed", now)
	other := createRide(t, db, rider, driver, models.StatusRequested, 37.8, -122.4, now)
	kept := createEvent(t, db, other.ID, "ride requested", now)

	if err := DeleteRide(db, ride.ID); err != nil {
		t.Fatalf("DeleteRide failed: %v", err)
	}

	var rideCount, eventCount int64
	db.Model(&models.Ride{}).Where("id = ?", ride.ID).Count(&rideCount)
	db.Model(&models.RideEvent{}).Where("ride_id = ?", ride.ID).Count(&eventCount)
	if rideCount != 0 || eventCount != 0 {
		t.Errorf("ride or its events survived deletion")
	}

	var keptEvent models.RideEvent
	if err := db.Where("id = ?", kept.ID).First(&keptEvent).Error; err != nil {
		t.Errorf("unrelated ride's event was deleted: %v", err)
	}
}

func TestDeleteRideNotFound(t *testing.T) {
	db := newTestDB(t)

	if err := DeleteRide(db, uuid.New()); !errors.Is(err, ErrRideNotFound) {
		t.Fatalf("expected ErrRideNotFound, got %v", err)
	}
}

func TestDeleteUserCascadesRidesAndEvents(t *testing.T) {
	db := newTestDB(t)
	rider := createUser(t, db, models.RoleRider)
	otherRider := createUser(t, db, models.RoleRider)
	driver := createUser(t, db, models.RoleDriver)
	now := time.Now().UTC()

	// The user is referenced as rider on one ride and driver on none;
	// both owning directions must cascade.
	asRider := createRide(t, db, rider, driver, models.StatusCompleted, 37.7, -122.4, now)
	createEvent(t, db, asRider.ID, "ride completed", now)
	unrelated := createRide(t, db, otherRider, driver, models.StatusRequested, 37.8, -122.4, now)

	if err := DeleteUser(db, rider.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	var userCount, rideCount, eventCount int64
	db.Model(&models.User{}).Where("id = ?", rider.ID).Count(&userCount)
	db.Model(&models.Ride{}).Where("rider_id = ?", rider.ID).Count(&rideCount)
	db.Model(&models.RideEvent{}).Where("ride_id = ?", asRider.ID).Count(&eventCount)
	if userCount != 0 || rideCount != 0 || eventCount != 0 {
		t.Errorf("cascade incomplete: users=%d rides=%d events=%d", userCount, rideCount, eventCount)
	}

	var keptRide models.Ride
	if err := db.Where("id = ?", unrelated.ID).First(&keptRide).Error; err != nil {
		t.Errorf("unrelated ride deleted: %v", err)
	}
}

func TestDeleteUserCascadesDriverRides(t *testing.T) {
	db := newTestDB(t)
	rider := createUser(t, db, models.RoleRider)
	driver := createUser(t, db, models.RoleDriver)
	now := time.Now().UTC()

	ride := createRide(t, db, rider, driver, models.StatusRequested, 37.7, -122.4, now)

	if err := DeleteUser(db, driver.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	var rideCount int64
	db.Model(&models.Ride{}).Where("id = ?", ride.ID).Count(&rideCount)
	if rideCount != 0 {
		t.Errorf("ride referencing deleted driver survived")
	}

	// The rider on that ride is untouched.
	var keptRider models.User
	if err := db.Where("id = ?", rider.ID).First(&keptRider).Error; err != nil {
		t.Errorf("rider deleted by driver cascade: %v", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	db := newTestDB(t)

	if err := DeleteUser(db, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
