package availability

import (
	"time"

	"github.com/verdantstay/hospitality-backend/internal/booking"
	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
)

var (
	ErrPropertyRequired  = apperror.NewValidation("property_id is required")
	ErrInvalidInterval   = apperror.NewValidation("check-in must be before check-out")
	ErrInvalidSlot       = apperror.NewValidation("a valid date and time are required")
	ErrPartySizeRequired = apperror.NewValidation("party_size must be at least 1")
	ErrServiceRequired   = apperror.NewValidation("service_id is required")
	ErrItemsRequired     = apperror.NewValidation("at least one inventory item is required")
	ErrInvalidQuantity   = apperror.NewValidation("item quantity must be at least 1")

	ErrServiceNotFound = apperror.NewNotFound("service not found")
)

// Default slot lengths when the request does not specify a duration.
const (
	DefaultDiningDuration  = 2 * time.Hour
	DefaultServiceDuration = time.Hour
)

// RoomRequest asks whether rooms of a property can host a stay.
type RoomRequest struct {
	TenantID    string
	PropertyID  string
	Stay        booking.Interval
	RoomType    string
	MinCapacity int
}

// Room identifies one available room in a result.
type Room struct {
	ID         string
	Name       string
	RoomType   string
	Capacity   int
	PriceCents int64
	Currency   string
}

// RoomResult lists available rooms sorted ascending by price.
type RoomResult struct {
	AvailableRooms []Room
	TotalAvailable int
	TotalRooms     int
}

// TableRequest asks for a table seating at least PartySize guests
// for a dining slot.
type TableRequest struct {
	TenantID   string
	PropertyID string
	PartySize  int
	Slot       booking.Interval
}

// Table identifies one available table in a result.
type Table struct {
	ID       string
	Name     string
	Capacity int
}

// TableResult lists available tables sorted ascending by capacity,
// so the smallest adequate table comes first.
type TableResult struct {
	AvailableTables []Table
	TotalAvailable  int
	TotalTables     int
}

// ServiceRequest asks whether a service slot has remaining concurrent
// capacity at the given time.
type ServiceRequest struct {
	TenantID   string
	PropertyID string
	ServiceID  string
	Slot       booking.Interval
}

// ServiceResult reports remaining concurrent capacity for a service slot.
type ServiceResult struct {
	Available         bool
	ServiceID         string
	Name              string
	RemainingCapacity int
	MaxCapacity       int
	PriceCents        int64
	Currency          string
	Reason            string
}

// ItemRequest is one (item, quantity) pair in an inventory check.
type ItemRequest struct {
	ItemID   string
	Name     string
	Quantity int
}

// InventoryRequest asks whether the property's stock covers every
// requested item.
type InventoryRequest struct {
	TenantID   string
	PropertyID string
	Items      []ItemRequest
}

// UnavailableItem records one item whose stock cannot cover the request,
// or whose check failed.
type UnavailableItem struct {
	ItemID           string
	Name             string
	RequiredQuantity int
	AvailableStock   int
	Reason           string
}

// LowStockItem is a side observation: stock at or below the reorder
// threshold, reported whether or not the request succeeds.
type LowStockItem struct {
	ItemID           string
	Name             string
	CurrentStock     int
	MinimumThreshold int
}

// InventoryResult aggregates the per-item stock comparisons.
type InventoryResult struct {
	Available        bool
	UnavailableItems []UnavailableItem
	LowStockItems    []LowStockItem
}
