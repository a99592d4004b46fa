package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/realtime"
)

// CreateAppointmentRequest represents the request body for booking an
// appointment. There is deliberately no status field: every new appointment
// is created pending.
type CreateAppointmentRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

// CreateAppointment handles POST /api/v1/appointments - books an appointment
func CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// The booking form only offers these values, but the form is not the
	// only possible client
	if !models.ValidBookingDate(req.Date, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DATE",
				"message": "Date must fall within the next 7 days",
			},
		})
		return
	}
	if !models.ValidTimeSlot(req.Time) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TIME_SLOT",
				"message": "Time must be one of the offered slots",
			},
		})
		return
	}

	appointment := models.Appointment{
		Name:   req.Name,
		Email:  req.Email,
		Date:   req.Date,
		Time:   req.Time,
		Notes:  req.Notes,
		Status: models.StatusPending,
	}

	db := config.GetDB()
	if err := db.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create appointment",
			},
		})
		return
	}

	realtime.PublishAppointments(db)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// GetBookingOptions handles GET /api/v1/appointments/options - returns the
// bookable dates (a rolling 7-day window starting today) and time slots
func GetBookingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"dates": models.BookingDates(time.Now()),
			"times": models.TimeSlots,
		},
	})
}
