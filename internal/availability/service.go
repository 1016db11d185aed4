package availability

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verdantstay/hospitality-backend/internal/booking"
	"github.com/verdantstay/hospitality-backend/internal/inventory"
	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
	"github.com/verdantstay/hospitality-backend/internal/property"
	"github.com/verdantstay/hospitality-backend/internal/resource"
	"github.com/verdantstay/hospitality-backend/pkg/logger"
)

// Service is the availability checker. It is stateless: every call reads a
// fresh snapshot from the store and computes a decision. It never reserves
// anything; the booking-commit path owns the race between check and book.
type Service interface {
	CheckRooms(ctx context.Context, req RoomRequest) (*RoomResult, error)
	CheckTables(ctx context.Context, req TableRequest) (*TableResult, error)
	CheckService(ctx context.Context, req ServiceRequest) (*ServiceResult, error)
	CheckInventory(ctx context.Context, req InventoryRequest) (*InventoryResult, error)
}

type service struct {
	properties property.Repository
	resources  resource.Repository
	bookings   booking.Repository
	items      inventory.Repository
}

func NewService(
	properties property.Repository,
	resources resource.Repository,
	bookings booking.Repository,
	items inventory.Repository,
) Service {
	return &service{
		properties: properties,
		resources:  resources,
		bookings:   bookings,
		items:      items,
	}
}

func (s *service) CheckRooms(ctx context.Context, req RoomRequest) (*RoomResult, error) {
	if req.PropertyID == "" {
		return nil, ErrPropertyRequired
	}
	if !req.Stay.Valid() {
		return nil, ErrInvalidInterval
	}
	if err := s.resolveProperty(ctx, req.TenantID, req.PropertyID); err != nil {
		return nil, err
	}

	filter := resource.Filter{
		PropertyID:  req.PropertyID,
		Kind:        resource.KindRoom,
		RoomType:    req.RoomType,
		MinCapacity: req.MinCapacity,
	}
	candidates, blocked, err := s.fetchSnapshot(ctx, filter, req.Stay)
	if err != nil {
		return nil, s.storeError(err, "room availability check failed",
			zap.String("property_id", req.PropertyID),
			zap.Time("check_in", req.Stay.Start),
			zap.Time("check_out", req.Stay.End),
		)
	}

	result := &RoomResult{
		AvailableRooms: make([]Room, 0, len(candidates)),
		TotalRooms:     len(candidates),
	}
	for _, r := range candidates {
		if hasConflict(r.ID, blocked, req.Stay) {
			continue
		}
		result.AvailableRooms = append(result.AvailableRooms, Room{
			ID:         r.ID,
			Name:       r.Name,
			RoomType:   r.RoomType,
			Capacity:   r.Capacity,
			PriceCents: r.PriceCents,
			Currency:   r.Currency,
		})
	}
	result.TotalAvailable = len(result.AvailableRooms)

	return result, nil
}

func (s *service) CheckTables(ctx context.Context, req TableRequest) (*TableResult, error) {
	if req.PropertyID == "" {
		return nil, ErrPropertyRequired
	}
	if req.PartySize < 1 {
		return nil, ErrPartySizeRequired
	}
	if !req.Slot.Valid() {
		return nil, ErrInvalidSlot
	}
	if err := s.resolveProperty(ctx, req.TenantID, req.PropertyID); err != nil {
		return nil, err
	}

	filter := resource.Filter{
		PropertyID:  req.PropertyID,
		Kind:        resource.KindTable,
		MinCapacity: req.PartySize, // inclusive: capacity == party size matches
	}
	candidates, blocked, err := s.fetchSnapshot(ctx, filter, req.Slot)
	if err != nil {
		return nil, s.storeError(err, "table availability check failed",
			zap.String("property_id", req.PropertyID),
			zap.Int("party_size", req.PartySize),
			zap.Time("slot_start", req.Slot.Start),
		)
	}

	result := &TableResult{
		AvailableTables: make([]Table, 0, len(candidates)),
		TotalTables:     len(candidates),
	}
	for _, r := range candidates {
		if hasConflict(r.ID, blocked, req.Slot) {
			continue
		}
		result.AvailableTables = append(result.AvailableTables, Table{
			ID:       r.ID,
			Name:     r.Name,
			Capacity: r.Capacity,
		})
	}
	result.TotalAvailable = len(result.AvailableTables)

	return result, nil
}

func (s *service) CheckService(ctx context.Context, req ServiceRequest) (*ServiceResult, error) {
	if req.PropertyID == "" {
		return nil, ErrPropertyRequired
	}
	if req.ServiceID == "" {
		return nil, ErrServiceRequired
	}
	if !req.Slot.Valid() {
		return nil, ErrInvalidSlot
	}
	if err := s.resolveProperty(ctx, req.TenantID, req.PropertyID); err != nil {
		return nil, err
	}

	svc, err := s.resources.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, s.storeError(err, "service availability check failed",
			zap.String("property_id", req.PropertyID),
			zap.String("service_id", req.ServiceID),
		)
	}
	if svc.PropertyID != req.PropertyID || svc.Kind != resource.KindService {
		return nil, ErrServiceNotFound
	}

	result := &ServiceResult{
		ServiceID:   svc.ID,
		Name:        svc.Name,
		MaxCapacity: svc.Capacity,
		PriceCents:  svc.PriceCents,
		Currency:    svc.Currency,
	}

	if svc.Status != resource.StatusAvailable {
		result.Reason = "service is not currently offered"
		return result, nil
	}

	blocked, err := s.bookings.ListBlocking(ctx, booking.Filter{
		ResourceIDs: []string{svc.ID},
		Window:      req.Slot,
	})
	if err != nil {
		return nil, s.storeError(err, "service availability check failed",
			zap.String("property_id", req.PropertyID),
			zap.String("service_id", req.ServiceID),
		)
	}

	occupied := 0
	for _, b := range blocked {
		if b.Status.Blocking() && b.Interval().Overlaps(req.Slot) {
			occupied++
		}
	}

	remaining := svc.Capacity - occupied
	if remaining < 0 {
		remaining = 0
	}
	result.RemainingCapacity = remaining
	result.Available = remaining > 0
	if !result.Available && result.Reason == "" {
		result.Reason = "service is fully booked for the requested time"
	}

	return result, nil
}

func (s *service) CheckInventory(ctx context.Context, req InventoryRequest) (*InventoryResult, error) {
	if req.PropertyID == "" {
		return nil, ErrPropertyRequired
	}
	if len(req.Items) == 0 {
		return nil, ErrItemsRequired
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}
	if err := s.resolveProperty(ctx, req.TenantID, req.PropertyID); err != nil {
		return nil, err
	}

	result := &InventoryResult{
		UnavailableItems: make([]UnavailableItem, 0),
		LowStockItems:    make([]LowStockItem, 0),
	}

	for _, want := range req.Items {
		item, err := s.items.GetByID(ctx, req.PropertyID, want.ItemID)
		if err != nil {
			if errors.Is(err, inventory.ErrNotFound) {
				result.UnavailableItems = append(result.UnavailableItems, UnavailableItem{
					ItemID: want.ItemID,
					Name:   want.Name,
					Reason: "item not found",
				})
				continue
			}
			// A single item failure must not abort the whole batch.
			logger.WithModule("availability").Error("inventory item check failed",
				zap.String("property_id", req.PropertyID),
				zap.String("item_id", want.ItemID),
				zap.Error(err),
			)
			result.UnavailableItems = append(result.UnavailableItems, UnavailableItem{
				ItemID: want.ItemID,
				Name:   want.Name,
				Reason: "Error checking availability",
			})
			continue
		}

		if item.CurrentStock < want.Quantity {
			result.UnavailableItems = append(result.UnavailableItems, UnavailableItem{
				ItemID:           item.ID,
				Name:             item.Name,
				RequiredQuantity: want.Quantity,
				AvailableStock:   item.CurrentStock,
				Reason:           "insufficient stock",
			})
		}

		// Side observation, never blocking: compares current stock only,
		// not the would-be stock after commit.
		if item.LowStock() {
			result.LowStockItems = append(result.LowStockItems, LowStockItem{
				ItemID:           item.ID,
				Name:             item.Name,
				CurrentStock:     item.CurrentStock,
				MinimumThreshold: item.MinimumThreshold,
			})
		}
	}

	result.Available = len(result.UnavailableItems) == 0

	return result, nil
}

// resolveProperty verifies the property exists within the caller's tenant
// scope before any decision is computed.
func (s *service) resolveProperty(ctx context.Context, tenantID, propertyID string) error {
	_, err := s.properties.GetByID(ctx, tenantID, propertyID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return s.storeError(err, "property lookup failed",
			zap.String("property_id", propertyID),
		)
	}
	return nil
}

// fetchSnapshot loads candidate resources and possibly-overlapping blocking
// bookings. The two queries are independent, so they run concurrently.
func (s *service) fetchSnapshot(ctx context.Context, filter resource.Filter, window booking.Interval) ([]*resource.Resource, []*booking.Booking, error) {
	var (
		candidates []*resource.Resource
		blocked    []*booking.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.resources.ListBookable(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		blocked, err = s.bookings.ListBlocking(gctx, booking.Filter{
			PropertyID: filter.PropertyID,
			Window:     window,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return candidates, blocked, nil
}

// hasConflict runs the precise half-open overlap test for one resource
// against the fetched blocking bookings.
func hasConflict(resourceID string, blocked []*booking.Booking, window booking.Interval) bool {
	for _, b := range blocked {
		if b.ResourceID != resourceID {
			continue
		}
		if !b.Status.Blocking() {
			continue
		}
		if b.Interval().Overlaps(window) {
			return true
		}
	}
	return false
}

func (s *service) storeError(err error, msg string, fields ...zap.Field) error {
	logger.WithModule("availability").Error(msg, append(fields, zap.Error(err))...)
	return apperror.WrapStore(err, "availability check failed")
}
