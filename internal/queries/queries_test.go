package queries

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/danuarts/ridehail/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "queries.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Ride{}, &models.RideEvent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	userSeq++
	user := &models.User{
		Username:    fmt.Sprintf("%s%d", role, userSeq),
		Email:       fmt.Sprintf("%s%d@example.com", role, userSeq),
		Password:    "hashed",
		Role:        role,
		FirstName:   "Test",
		LastName:    "User",
		PhoneNumber: "+1234567890",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createRide(t *testing.T, db *gorm.DB, rider, driver *models.User, status string, pickupLat, pickupLon float64, pickupTime time.Time) *models.Ride {
	t.Helper()

	ride := &models.Ride{
		Status:           status,
		RiderID:          rider.ID,
		DriverID:         driver.ID,
		PickupLatitude:   pickupLat,
		PickupLongitude:  pickupLon,
		DropoffLatitude:  pickupLat + 0.01,
		DropoffLongitude: pickupLon + 0.01,
		PickupTime:       pickupTime,
	}
	if err := db.Create(ride).Error; err != nil {
		t.Fatalf("failed to create ride: %v", err)
	}
	return ride
}

func createEvent(t *testing.T, db *gorm.DB, rideID uuid.UUID, description string, createdAt time.Time) *models.RideEvent {
	t.Helper()

	event := &models.RideEvent{
		RideID:      rideID,
		Description: description,
		CreatedAt:   createdAt,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create ride event: %v", err)
	}
	return event
}
