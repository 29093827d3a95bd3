package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danuarts/ridehail/internal/helpers"
	"github.com/danuarts/ridehail/internal/models"
	"github.com/danuarts/ridehail/internal/validators"
)

// ListRideEvents lists events newest first, optionally filtered by ride_id.
func ListRideEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pagination := helpers.GetPagination(c)

	query := gormDB.Model(&models.RideEvent{})
	if rideIDParam := c.Query("ride_id"); rideIDParam != "" {
		rideID, err := uuid.Parse(rideIDParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride_id parameter.")
			return
		}
		query = query.Where("ride_id = ?", rideID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ride events.")
		return
	}

	var events []models.RideEvent
	err := query.Order("created_at DESC, id ASC").
		Offset(pagination.Offset()).Limit(pagination.PageSize).
		Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ride events.")
		return
	}

	c.JSON(http.StatusOK, helpers.NewPaginatedResponse(c, pagination, count, events))
}

func GetRideEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride event ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.RideEvent
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ride event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ride event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateRideEvent rewrites an event's description. Events are append-only
// in normal flow; the boundary allows this for administrative correction.
// CreatedAt is never touched.
func UpdateRideEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride event ID.")
		return
	}

	var req RideEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	trimmed, verrs := validators.ValidateRideEventDescription(req.Description)
	if verrs != nil {
		helpers.RespondWithValidationErrors(c, verrs)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.RideEvent
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ride event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ride event.")
		return
	}

	if err := gormDB.Model(&event).Update("description", trimmed).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ride event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride event updated successfully.",
		"event":   event,
	})
}

func DeleteRideEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ride event ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", eventID).Delete(&models.RideEvent{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ride event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Ride event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride event deleted successfully.",
	})
}
