package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking-engine/models"
	"hotel-booking-engine/utils"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns booking creation and the status/payment state machine.
// No other component writes Status or PaymentStatus.
type BookingService struct {
	DB           *gorm.DB
	Catalog      *CatalogService
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB, catalog *CatalogService, availability *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Catalog: catalog, Availability: availability}
}

// SelectedServiceInput is how callers select add-ons: a catalog key plus the
// guest count for per-guest services.
type SelectedServiceInput struct {
	ServiceKey string `json:"serviceKey"`
	Quantity   int    `json:"quantity"`
}

// GuestInfo is the contact snapshot captured at creation.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateBookingRequest carries everything the creation flow needs.
type CreateBookingRequest struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	Services []SelectedServiceInput
	Guest    GuestInfo
}

func isDuplicateKeyErr(err error) bool {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

func (s *BookingService) validateOccupancy(room models.Room, adults, children int) error {
	if adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidQuantity)
	}
	if children < 0 {
		return fmt.Errorf("%w: children cannot be negative", ErrInvalidQuantity)
	}
	if adults > room.MaxAdults || children > room.MaxChildren {
		return fmt.Errorf("%w: room %s allows up to %d adults and %d children",
			ErrCapacityExceeded, room.RoomNumber, room.MaxAdults, room.MaxChildren)
	}
	return nil
}

// priceStay resolves the selected services against the catalog and computes
// the authoritative total. Unknown keys are tolerated (logged inside
// ResolveServices); pricing itself stays pure.
func (s *BookingService) priceStay(room models.Room, checkIn, checkOut time.Time, selected []SelectedServiceInput, guests int) (PriceBreakdown, error) {
	resolved, err := s.Catalog.ResolveServices(selected, guests)
	if err != nil {
		return PriceBreakdown{}, err
	}
	return ComputeTotal(room, checkIn, checkOut, resolved, "", 0)
}

// CreateBooking is the only path that produces a new Booking.
//
// The availability check and the insert run in one transaction with the room
// row locked FOR UPDATE, so two concurrent requests for overlapping dates on
// the same room cannot both succeed: the second blocks on the lock and then
// sees the first insert.
func (s *BookingService) CreateBooking(req CreateBookingRequest) (*models.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidDateRange)
	}

	var created models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, req.RoomID)
			}
			return fmt.Errorf("db error loading room %d: %w", req.RoomID, err)
		}

		if err := s.validateOccupancy(room, req.Adults, req.Children); err != nil {
			return err
		}

		conflicts, err := s.Availability.findConflicts(tx, req.RoomID, req.CheckIn, req.CheckOut, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: room %s is booked for the requested dates", ErrRoomUnavailable, room.RoomNumber)
		}

		breakdown, err := s.priceStay(room, req.CheckIn, req.CheckOut, req.Services, req.Adults+req.Children)
		if err != nil {
			return err
		}

		snapshotJSON, err := json.Marshal(breakdown.Snapshots())
		if err != nil {
			return fmt.Errorf("failed to marshal service snapshots: %w", err)
		}

		booking := models.Booking{
			RoomID:          req.RoomID,
			CheckInDate:     req.CheckIn,
			CheckOutDate:    req.CheckOut,
			Nights:          breakdown.Nights,
			Adults:          req.Adults,
			Children:        req.Children,
			Services:        datatypes.JSON(snapshotJSON),
			TotalPriceCents: breakdown.TotalCents,
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentPending,
			GuestName:       strings.TrimSpace(req.Guest.Name),
			GuestEmail:      strings.TrimSpace(req.Guest.Email),
			GuestPhone:      strings.TrimSpace(req.Guest.Phone),
		}

		// Invoice numbers are unique; retry on the rare collision.
		maxRetries := 5
		var createErr error
		for attempt := 0; attempt < maxRetries; attempt++ {
			booking.InvoiceNumber = utils.GenerateInvoiceNumber(time.Now().UTC())
			createErr = tx.Create(&booking).Error
			if createErr == nil {
				break
			}
			if isDuplicateKeyErr(createErr) {
				log.Printf("invoice number collision (attempt %d) - retrying", attempt+1)
				booking.ID = 0
				continue
			}
			return fmt.Errorf("failed to create booking: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create booking after retries: %w", createErr)
		}

		created = booking
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Reload with the room relation for the response payload.
	if err := s.DB.Preload("Room").First(&created, created.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", created.ID, err)
	}
	return &created, nil
}

// UpdateStayRequest modifies a pending booking's stay. Nil/zero fields keep
// their current value; Services == nil keeps the current selection.
type UpdateStayRequest struct {
	RoomID   *uint
	CheckIn  *time.Time
	CheckOut *time.Time
	Adults   *int
	Children *int
	Services []SelectedServiceInput
}

// UpdateStay changes dates, room or services on a pending booking. The stored
// total is recomputed from scratch, never patched, and availability is
// re-checked excluding the booking itself.
func (s *BookingService) UpdateStay(bookingID uint, req UpdateStayRequest) (*models.Booking, error) {
	var updated models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}

		if booking.Status != models.StatusPending {
			return fmt.Errorf("%w: booking %d is %q", ErrBookingNotPending, bookingID, booking.Status)
		}

		roomID := booking.RoomID
		if req.RoomID != nil {
			roomID = *req.RoomID
		}
		checkIn := booking.CheckInDate
		if req.CheckIn != nil {
			checkIn = *req.CheckIn
		}
		checkOut := booking.CheckOutDate
		if req.CheckOut != nil {
			checkOut = *req.CheckOut
		}
		adults := booking.Adults
		if req.Adults != nil {
			adults = *req.Adults
		}
		children := booking.Children
		if req.Children != nil {
			children = *req.Children
		}

		if !checkOut.After(checkIn) {
			return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidDateRange)
		}

		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
			}
			return err
		}
		if err := s.validateOccupancy(room, adults, children); err != nil {
			return err
		}

		conflicts, err := s.Availability.findConflicts(tx, roomID, checkIn, checkOut, bookingID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: room %s is booked for the requested dates", ErrRoomUnavailable, room.RoomNumber)
		}

		var breakdown PriceBreakdown
		if req.Services != nil {
			breakdown, err = s.priceStay(room, checkIn, checkOut, req.Services, adults+children)
			if err != nil {
				return err
			}
		} else {
			// No new selection: reprice the stored snapshot against the new stay.
			var snapshots []models.ServiceSnapshot
			if len(booking.Services) > 0 {
				if err := json.Unmarshal(booking.Services, &snapshots); err != nil {
					return fmt.Errorf("failed to decode stored service snapshot: %w", err)
				}
			}
			resolved := make([]SelectedService, 0, len(snapshots))
			for _, snap := range snapshots {
				resolved = append(resolved, SelectedService{
					Name:           snap.Name,
					UnitPriceCents: snap.UnitPriceCents,
					PricingMode:    models.PricingPerGuest, // quantity already captured
					Quantity:       snap.Quantity,
				})
			}
			breakdown, err = ComputeTotal(room, checkIn, checkOut, resolved, "", 0)
			if err != nil {
				return err
			}
		}

		snapshotJSON, err := json.Marshal(breakdown.Snapshots())
		if err != nil {
			return fmt.Errorf("failed to marshal service snapshots: %w", err)
		}

		if err := tx.Model(&booking).
			Where("id = ? AND version = ?", booking.ID, booking.Version).
			Updates(map[string]interface{}{
				"room_id":           roomID,
				"check_in_date":     checkIn,
				"check_out_date":    checkOut,
				"nights":            breakdown.Nights,
				"adults":            adults,
				"children":          children,
				"services":          datatypes.JSON(snapshotJSON),
				"total_price_cents": breakdown.TotalCents,
				"version":           booking.Version + 1,
			}).Error; err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Room").First(&updated, updated.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", updated.ID, err)
	}
	return &updated, nil
}

// TransitionStatus moves a booking to the next status if the state machine
// allows it. The write is guarded by the booking's version so two concurrent
// transitions cannot both apply against a stale read; the loser gets
// ErrStaleVersion and may retry.
func (s *BookingService) TransitionStatus(bookingID uint, next string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	if err := CheckStatusTransition(booking.Status, booking.PaymentStatus, next); err != nil {
		return nil, err
	}

	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND version = ?", booking.ID, booking.Version).
		Updates(map[string]interface{}{
			"status":  next,
			"version": booking.Version + 1,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: booking %d changed concurrently", ErrStaleVersion, bookingID)
	}

	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// TransitionPayment moves a booking's payment status. Marking a booking paid
// records the supplied payment method; nothing else ever sets it.
func (s *BookingService) TransitionPayment(bookingID uint, next, method string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	method = strings.TrimSpace(method)
	if err := CheckPaymentTransition(booking.Status, booking.PaymentStatus, next, method); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"payment_status": next,
		"version":        booking.Version + 1,
	}
	if next == models.PaymentPaid {
		fields["payment_method"] = method
	}

	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND version = ?", booking.ID, booking.Version).
		Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: booking %d changed concurrently", ErrStaleVersion, bookingID)
	}

	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// GetBooking loads one booking with its room relation.
func (s *BookingService) GetBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// ListBookings returns all bookings newest-first.
func (s *BookingService) ListBookings() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.Preload("Room").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}
