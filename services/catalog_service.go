package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"hotel-booking-engine/models"

	"gorm.io/gorm"
)

// CatalogService is the read side of the rate table: rooms and the optional
// add-on service catalog. The booking engine treats it as read-only; the
// create/update operations exist for the admin screens.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ServiceKeyFromName turns a human name into a stable catalog key:
// lower-cased, non-alphanumerics collapsed to single dashes.
// Called once at catalog-entry creation, never at read time.
func ServiceKeyFromName(name string) string {
	var sb strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func (s *CatalogService) GetRoom(roomID uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return room, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return room, nil
}

func (s *CatalogService) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("RoomType").Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *CatalogService) CreateRoom(room *models.Room) error {
	if room.NightlyPriceCents < 0 {
		return fmt.Errorf("%w: nightly price cannot be negative", ErrInvalidQuantity)
	}
	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// ListServices returns the current catalog. An empty catalog is fine; the
// engine just offers no optional services.
func (s *CatalogService) ListServices() ([]models.ServiceDefinition, error) {
	var defs []models.ServiceDefinition
	if err := s.DB.Order("service_key").Find(&defs).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return defs, nil
}

// CreateService adds a catalog entry, deriving its key from the name and
// suffixing on collision so the stored key stays unique forever.
func (s *CatalogService) CreateService(name string, priceCents int64, pricingMode string) (models.ServiceDefinition, error) {
	var def models.ServiceDefinition

	name = strings.TrimSpace(name)
	if name == "" {
		return def, fmt.Errorf("%w: service name is required", ErrInvalidQuantity)
	}
	if priceCents < 0 {
		return def, fmt.Errorf("%w: service price cannot be negative", ErrInvalidQuantity)
	}
	if pricingMode != models.PricingFlatOnce && pricingMode != models.PricingPerGuest {
		return def, fmt.Errorf("%w: unknown pricing mode %q", ErrInvalidQuantity, pricingMode)
	}

	base := ServiceKeyFromName(name)
	if base == "" {
		return def, fmt.Errorf("%w: service name %q produces an empty key", ErrInvalidQuantity, name)
	}

	key := base
	for attempt := 2; ; attempt++ {
		var count int64
		if err := s.DB.Model(&models.ServiceDefinition{}).Where("service_key = ?", key).Count(&count).Error; err != nil {
			return def, fmt.Errorf("failed to check service key %q: %w", key, err)
		}
		if count == 0 {
			break
		}
		key = fmt.Sprintf("%s-%d", base, attempt)
	}

	def = models.ServiceDefinition{
		ServiceKey:  key,
		Name:        name,
		PriceCents:  priceCents,
		PricingMode: pricingMode,
	}
	if err := s.DB.Create(&def).Error; err != nil {
		return def, fmt.Errorf("failed to create service: %w", err)
	}
	return def, nil
}

// ResolveServices turns selection inputs into priced snapshots. Keys missing
// from the catalog are skipped with a warning rather than failing: booking
// snapshots and the live catalog legitimately diverge over time.
//
// For per_guest services a missing quantity defaults to the booking's guest
// count; an explicit quantity below 1 is rejected by the calculator.
func (s *CatalogService) ResolveServices(inputs []SelectedServiceInput, guests int) ([]SelectedService, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	defs, err := s.ListServices()
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.ServiceDefinition, len(defs))
	for _, d := range defs {
		byKey[d.ServiceKey] = d
	}

	out := make([]SelectedService, 0, len(inputs))
	for _, in := range inputs {
		def, ok := byKey[in.ServiceKey]
		if !ok {
			log.Printf("warning: unknown service key %q in selection - skipping", in.ServiceKey)
			continue
		}
		qty := in.Quantity
		if def.PricingMode == models.PricingPerGuest && qty == 0 {
			qty = guests
		}
		out = append(out, SelectedService{
			Name:           def.Name,
			UnitPriceCents: def.PriceCents,
			PricingMode:    def.PricingMode,
			Quantity:       qty,
		})
	}
	return out, nil
}
