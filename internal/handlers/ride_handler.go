package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danuarts/ridehail/internal/helpers"
	"github.com/danuarts/ridehail/internal/models"
	"github.com/danuarts/ridehail/internal/queries"
	"github.com/danuarts/ridehail/internal/validators"
)

type RideRequest struct {
	Status           string    `json:"status" binding:"required"`
	RiderID          uuid.UUID `json:"rider_id" binding:"required"`
	DriverID         uuid.UUID `json:"driver_id" binding:"required"`
	PickupLatitude   *float64  `json:"pickup_latitude" binding:"required"`
	PickupLongitude  *float64  `json:"pickup_longitude" binding:"required"`
	DropoffLatitude  *float64  `json:"dropoff_latitude" binding:"required"`
	DropoffLongitude *float64  `json:"dropoff_longitude" binding:"required"`
	PickupTime       time.Time `json:"pickup_time" binding:"required"`
}

type RideUpdateRequest struct {
	Status           *string    `json:"status"`
	RiderID          *uuid.UUID `json:"rider_id"`
	DriverID         *uuid.UUID `json:"driver_id"`
	PickupLatitude   *float64   `json:"pickup_latitude"`
	PickupLongitude  *float64   `json:"pickup_longitude"`
	DropoffLatitude  *float64   `json:"dropoff_latitude"`
	DropoffLongitude *float64   `json:"dropoff_longitude"`
	PickupTime       *time.Time `json:"pickup_time"`
}

type RideEventRequest struct {
	Description string `json:"description" binding:"required"`
}

// ListRides returns the ride list view. Optional query parameters: status,
// rider_email, latitude/longitude (invalid values silently disable distance
// ranking) and ordering (pickup_time, -pickup_time, distance, -distance).
func ListRides(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pagination := helpers.GetPagination(c)

	riderEmail := c.Query("rider_email")
	if riderEmail == "" {
		riderEmail = c.Query("riderEmail")
	}

	params := queries.RideListParams{
		Status:     c.Query("status"),
		RiderEmail: riderEmail,
		Latitude:   c.Query("latitude"),
		Longitude:  c.Query("longitude"),
		Ordering:   c.Query("ordering"),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	}

	items, count, err := queries.ListRides(gormDB, params)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving rides.")
		return
	}

	c.JSON(http.StatusOK, helpers.NewPaginatedResponse(c, pagination, count, items))
}

func CreateRide(c *gin.Context) {
	var req RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	rider, driver, ok := loadRideUsers(c, gormDB, req.RiderID, req.DriverID)
	if !ok {
		return
	}

	ride := models.Ride{
		Status:           req.Status,
		RiderID:          req.RiderID,
		DriverID:         req.DriverID,
		PickupLatitude:   *req.PickupLatitude,
		PickupLongitude:  *req.PickupLongitude,
		DropoffLatitude:  *req.DropoffLatitude,
		DropoffLongitude: *req.DropoffLongitude,
		PickupTime:       req.PickupTime,
	}

	if errs := validators.ValidateRide(&ride, rider, driver, time.Now().UTC(), true); errs != nil {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	if err := gormDB.Create(&ride).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create ride.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ride created successfully.",
		"ride_id": ride.ID,
	})
}

// GetRide returns the ride detail view with the full event history.
func GetRide(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	ride, err := queries.GetRide(gormDB, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ride not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ride.")
		return
	}

	c.JSON(http.StatusOK, ride)
}

// UpdateRide applies a partial update: absent fields keep their stored
// values and validation runs on the merged prospective state. The pickup
// time grace check only re-runs when pickup_time is part of the change set.
func UpdateRide(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride ID.")
		return
	}

	var req RideUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var ride models.Ride
	if err := gormDB.Where("id = ?", rideID).First(&ride).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ride not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ride.")
		return
	}

	if req.Status != nil {
		ride.Status = *req.Status
	}
	if req.RiderID != nil {
		ride.RiderID = *req.RiderID
	}
	if req.DriverID != nil {
		ride.DriverID = *req.DriverID
	}
	if req.PickupLatitude != nil {
		ride.PickupLatitude = *req.PickupLatitude
	}
	if req.PickupLongitude != nil {
		ride.PickupLongitude = *req.PickupLongitude
	}
	if req.DropoffLatitude != nil {
		ride.DropoffLatitude = *req.DropoffLatitude
	}
	if req.DropoffLongitude != nil {
		ride.DropoffLongitude = *req.DropoffLongitude
	}
	if req.PickupTime != nil {
		ride.PickupTime = *req.PickupTime
	}

	rider, driver, ok := loadRideUsers(c, gormDB, ride.RiderID, ride.DriverID)
	if !ok {
		return
	}

	if errs := validators.ValidateRide(&ride, rider, driver, time.Now().UTC(), req.PickupTime != nil); errs != nil {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	if err := gormDB.Save(&ride).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ride.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride updated successfully.",
		"ride":    ride,
	})
}

// DeleteRide removes a ride and cascades to its events.
func DeleteRide(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if err := queries.DeleteRide(gormDB, rideID); err != nil {
		if errors.Is(err, queries.ErrRideNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ride not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ride.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride deleted successfully.",
	})
}

// AddRideEvent appends an event to a ride. Rejected with 409 when the
// per-ride event cap is reached.
func AddRideEvent(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride ID.")
		return
	}

	var req RideEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	maxEvents := helpers.EnvInt("RIDE_EVENT_CAP", queries.DefaultRideEventCap)

	event, err := queries.AppendRideEvent(gormDB, rideID, req.Description, maxEvents)
	if err != nil {
		var verrs validators.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			helpers.RespondWithValidationErrors(c, verrs)
		case errors.Is(err, queries.ErrRideNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Ride not found.")
		case errors.Is(err, queries.ErrRideEventCapReached):
			helpers.RespondWithError(c, http.StatusConflict, "Ride has reached its event limit.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add ride event.")
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// loadRideUsers fetches the referenced rider and driver, responding with
// 404 and returning ok=false when either is missing.
func loadRideUsers(c *gin.Context, gormDB *gorm.DB, riderID, driverID uuid.UUID) (*models.User, *models.User, bool) {
	var rider models.User
	if err := gormDB.Where("id = ?", riderID).First(&rider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Rider not found.")
			return nil, nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving rider.")
		return nil, nil, false
	}

	var driver models.User
	if err := gormDB.Where("id = ?", driverID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Driver not found.")
			return nil, nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving driver.")
		return nil, nil, false
	}

	return &rider, &driver, true
}
