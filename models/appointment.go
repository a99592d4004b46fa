package models

import (
	"strings"
	"time"
)

// Appointment statuses. A new appointment is always created as pending;
// admins may set any status from any status (no transition guard).
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// TimeSlots are the eight bookable slots offered each day, with a lunch gap.
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

// BookingWindowDays is the rolling window of bookable dates starting today.
const BookingWindowDays = 7

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// Appointment represents a booking request submitted from the site.
// Appointments are hard-deleted by admins, so there is no soft-delete column.
type Appointment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Date      string    `gorm:"not null" json:"date"` // YYYY-MM-DD
	Time      string    `gorm:"not null" json:"time"` // one of TimeSlots
	Notes     string    `gorm:"type:text" json:"notes"`
	Status    string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidTimeSlot reports whether t is one of the offered time slots.
func ValidTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// BookingDates returns the bookable dates: today plus the next six days.
func BookingDates(now time.Time) []string {
	dates := make([]string, 0, BookingWindowDays)
	for i := 0; i < BookingWindowDays; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// ValidBookingDate reports whether date parses as YYYY-MM-DD and falls
// inside the rolling booking window starting at now.
func ValidBookingDate(date string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := today.AddDate(0, 0, BookingWindowDays-1)
	return !d.Before(today) && !d.After(last)
}

// FilterAppointments applies the dashboard filters in memory over the full
// set: an exact status match (where "all" or "" disables it) and a
// case-insensitive substring search across name, email and notes.
func FilterAppointments(appointments []Appointment, status, search string) []Appointment {
	filtered := make([]Appointment, 0, len(appointments))
	searchLower := strings.ToLower(search)

	for _, a := range appointments {
		if status != "" && status != "all" && a.Status != status {
			continue
		}
		if searchLower != "" &&
			!strings.Contains(strings.ToLower(a.Name), searchLower) &&
			!strings.Contains(strings.ToLower(a.Email), searchLower) &&
			!strings.Contains(strings.ToLower(a.Notes), searchLower) {
			continue
		}
		filtered = append(filtered, a)
	}

	return filtered
}
