package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/realtime"
)

// appointmentID parses the :id path parameter. The raw string must never
// reach a query; GORM treats non-numeric inline conditions as SQL.
func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListAppointments handles GET /api/v1/admin/appointments - returns all
// appointments ordered by creation time descending, optionally narrowed by
// a status filter and a free-text search. Both filters apply in memory over
// the full set, mirroring the dashboard's live view.
func ListAppointments(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	search := c.Query("q")

	if status != "all" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status filter must be all, pending, completed or cancelled",
			},
		})
		return
	}

	db := config.GetDB()
	var appointments []models.Appointment
	if err := db.Order("created_at DESC, id DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load appointments",
			},
		})
		return
	}

	filtered := models.FilterAppointments(appointments, status, search)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    filtered,
		"total":   len(appointments),
	})
}

// UpdateAppointmentStatusRequest represents the request body for a status change
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAppointmentStatus handles PATCH /api/v1/admin/appointments/:id/status -
// sets an appointment's status. Any status may be set from any status; the
// operation is idempotent.
func UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
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

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be pending, completed or cancelled",
			},
		})
		return
	}

	id, ok := appointmentID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	db := config.GetDB()
	var appointment models.Appointment
	if err := db.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	if err := db.Model(&appointment).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update appointment status",
			},
		})
		return
	}

	realtime.PublishAppointments(db)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// DeleteAppointment handles DELETE /api/v1/admin/appointments/:id - removes
// an appointment entirely. The dashboard asks the admin to confirm first;
// the confirmation travels as ?confirm=true and the delete is refused
// without it.
func DeleteAppointment(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFIRMATION_REQUIRED",
				"message": "Deleting an appointment must be confirmed with confirm=true",
			},
		})
		return
	}

	id, ok := appointmentID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	db := config.GetDB()
	var appointment models.Appointment
	if err := db.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	// Hard delete: there is no soft-delete column on appointments
	if err := db.Unscoped().Delete(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete appointment",
			},
		})
		return
	}

	realtime.PublishAppointments(db)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}
