package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/middleware"
	"github.com/uxdsrini/studio-api/models"
)

const appointmentsRoom = "appointments"

// appointmentsEvent is the snapshot frame pushed to dashboard watchers
type appointmentsEvent struct {
	Type         string               `json:"type"` // always "appointments"
	Appointments []models.Appointment `json:"appointments"`
}

// HandleAppointmentsWatch handles GET /api/v1/admin/appointments/watch - a
// websocket that receives the full appointment collection (ordered by
// creation time, descending) on connect and after every mutation. Browsers
// cannot set headers on websocket requests, so the token travels in the
// "token" query parameter.
func HandleAppointmentsWatch(c *gin.Context) {
	cfg := config.GetConfig()
	token := c.Query("token")
	if _, err := middleware.ValidateTokenString(c.Request.Context(), cfg, token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TOKEN",
				"message": "Failed to validate JWT.",
			},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own HTTP error response
		log.Printf("watch websocket upgrade failed: %v", err)
		return
	}

	hub := GetHub()
	cc := hub.Add(appointmentsRoom, conn)
	defer hub.Remove(cc)

	// Initial snapshot so the dashboard is current immediately
	appointments, err := loadAppointments(config.GetDB())
	if err != nil {
		log.Printf("failed to load appointments for watch: %v", err)
	} else if err := cc.WriteJSON(appointmentsEvent{Type: "appointments", Appointments: appointments}); err != nil {
		return
	}

	// Watchers only listen; the read loop just detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishAppointments broadcasts the current appointment collection to all
// dashboard watchers. Controllers call it after every create, status change
// and delete.
func PublishAppointments(db *gorm.DB) {
	hub := GetHub()
	if hub == nil {
		return
	}

	appointments, err := loadAppointments(db)
	if err != nil {
		log.Printf("failed to load appointments for broadcast: %v", err)
		return
	}
	hub.Broadcast(appointmentsRoom, appointmentsEvent{Type: "appointments", Appointments: appointments})
}

func loadAppointments(db *gorm.DB) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := db.Order("created_at DESC, id DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}
