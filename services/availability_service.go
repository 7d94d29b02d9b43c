package services

import (
	"fmt"
	"time"

	"hotel-booking-engine/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "is this room free for these dates".
// Cancelled bookings never block a room.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// RangesOverlap reports whether [a1,a2) and [b1,b2) intersect.
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// FindConflicts returns every non-cancelled booking for the room whose stay
// overlaps the candidate range. excludeBookingID > 0 skips that booking so a
// modification doesn't conflict with itself.
func (s *AvailabilityService) FindConflicts(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) ([]models.Booking, error) {
	return s.findConflicts(s.DB, roomID, checkIn, checkOut, excludeBookingID)
}

// findConflicts runs against the given handle so booking creation can reuse
// the same query inside its transaction.
func (s *AvailabilityService) findConflicts(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) ([]models.Booking, error) {
	q := tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", models.StatusCancelled).
		Where("check_in_date < ? AND ? < check_out_date", checkOut, checkIn)
	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var conflicts []models.Booking
	if err := q.Find(&conflicts).Error; err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	return conflicts, nil
}

// IsAvailable reports whether the room has no conflicting booking over the
// candidate range.
func (s *AvailabilityService) IsAvailable(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidDateRange)
	}
	conflicts, err := s.FindConflicts(roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}
