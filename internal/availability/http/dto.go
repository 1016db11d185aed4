package http

import (
	"time"

	"github.com/verdantstay/hospitality-backend/internal/availability"
	"github.com/verdantstay/hospitality-backend/internal/booking"
	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// CheckRoomsRequest is the body of POST /availability/rooms.
type CheckRoomsRequest struct {
	PropertyID   string `json:"property_id" binding:"required,uuid"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	RoomType     string `json:"room_type"`
	MinCapacity  int    `json:"min_capacity" binding:"omitempty,min=1"`
}

// Stay parses the requested stay as a half-open interval of whole days.
func (r *CheckRoomsRequest) Stay() (booking.Interval, error) {
	checkIn, err := time.ParseInLocation(dateLayout, r.CheckInDate, time.UTC)
	if err != nil {
		return booking.Interval{}, apperror.NewValidation("check_in_date must be YYYY-MM-DD")
	}
	checkOut, err := time.ParseInLocation(dateLayout, r.CheckOutDate, time.UTC)
	if err != nil {
		return booking.Interval{}, apperror.NewValidation("check_out_date must be YYYY-MM-DD")
	}
	return booking.Interval{Start: checkIn, End: checkOut}, nil
}

type RoomResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	RoomType string  `json:"room_type"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type RoomAvailabilityResponse struct {
	AvailableRooms []RoomResponse `json:"available_rooms"`
	TotalAvailable int            `json:"total_available"`
	TotalRooms     int            `json:"total_rooms"`
	Reason         string         `json:"reason,omitempty"`
}

func NewRoomAvailabilityResponse(res *availability.RoomResult) RoomAvailabilityResponse {
	rooms := make([]RoomResponse, len(res.AvailableRooms))
	for i, r := range res.AvailableRooms {
		rooms[i] = RoomResponse{
			ID:       r.ID,
			Name:     r.Name,
			RoomType: r.RoomType,
			Capacity: r.Capacity,
			Price:    float64(r.PriceCents) / 100,
			Currency: r.Currency,
		}
	}
	return RoomAvailabilityResponse{
		AvailableRooms: rooms,
		TotalAvailable: res.TotalAvailable,
		TotalRooms:     res.TotalRooms,
	}
}

// CheckTablesRequest is the body of POST /availability/tables.
type CheckTablesRequest struct {
	PropertyID      string `json:"property_id" binding:"required,uuid"`
	PartySize       int    `json:"party_size" binding:"required,min=1"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=1"`
}

// Slot parses the dining slot, defaulting to the standard dining duration.
func (r *CheckTablesRequest) Slot() (booking.Interval, error) {
	return parseSlot(r.Date, r.Time, r.DurationMinutes, availability.DefaultDiningDuration)
}

type TableResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type TableAvailabilityResponse struct {
	AvailableTables []TableResponse `json:"available_tables"`
	TotalAvailable  int             `json:"total_available"`
	TotalTables     int             `json:"total_tables"`
	Reason          string          `json:"reason,omitempty"`
}

func NewTableAvailabilityResponse(res *availability.TableResult) TableAvailabilityResponse {
	tables := make([]TableResponse, len(res.AvailableTables))
	for i, t := range res.AvailableTables {
		tables[i] = TableResponse{ID: t.ID, Name: t.Name, Capacity: t.Capacity}
	}
	return TableAvailabilityResponse{
		AvailableTables: tables,
		TotalAvailable:  res.TotalAvailable,
		TotalTables:     res.TotalTables,
	}
}

// CheckServiceRequest is the body of POST /availability/service.
type CheckServiceRequest struct {
	PropertyID      string `json:"property_id" binding:"required,uuid"`
	ServiceID       string `json:"service_id" binding:"required,uuid"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=1"`
}

// Slot parses the service slot, defaulting to the standard service duration.
func (r *CheckServiceRequest) Slot() (booking.Interval, error) {
	return parseSlot(r.Date, r.Time, r.DurationMinutes, availability.DefaultServiceDuration)
}

type ServiceAvailabilityResponse struct {
	Available         bool    `json:"available"`
	ServiceID         string  `json:"service_id,omitempty"`
	Name              string  `json:"name,omitempty"`
	RemainingCapacity int     `json:"remaining_capacity"`
	MaxCapacity       int     `json:"max_capacity,omitempty"`
	Price             float64 `json:"price,omitempty"`
	Currency          string  `json:"currency,omitempty"`
	Reason            string  `json:"reason,omitempty"`
}

func NewServiceAvailabilityResponse(res *availability.ServiceResult) ServiceAvailabilityResponse {
	return ServiceAvailabilityResponse{
		Available:         res.Available,
		ServiceID:         res.ServiceID,
		Name:              res.Name,
		RemainingCapacity: res.RemainingCapacity,
		MaxCapacity:       res.MaxCapacity,
		Price:             float64(res.PriceCents) / 100,
		Currency:          res.Currency,
		Reason:            res.Reason,
	}
}

// CheckInventoryRequest is the body of POST /availability/inventory.
type CheckInventoryRequest struct {
	PropertyID string             `json:"property_id" binding:"required,uuid"`
	Items      []ItemCheckRequest `json:"items" binding:"required,min=1,dive"`
}

type ItemCheckRequest struct {
	InventoryItemID string `json:"inventory_item_id" binding:"required,uuid"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	Name            string `json:"name"`
}

type UnavailableItemResponse struct {
	InventoryItemID  string `json:"inventory_item_id"`
	Name             string `json:"name,omitempty"`
	RequiredQuantity int    `json:"required_quantity,omitempty"`
	AvailableStock   int    `json:"available_stock"`
	Reason           string `json:"reason"`
}

type LowStockItemResponse struct {
	InventoryItemID  string `json:"inventory_item_id"`
	Name             string `json:"name,omitempty"`
	CurrentStock     int    `json:"current_stock"`
	MinimumThreshold int    `json:"minimum_threshold"`
}

type InventoryAvailabilityResponse struct {
	Available        bool                      `json:"available"`
	UnavailableItems []UnavailableItemResponse `json:"unavailable_items"`
	LowStockItems    []LowStockItemResponse    `json:"low_stock_items"`
	Reason           string                    `json:"reason,omitempty"`
}

func NewInventoryAvailabilityResponse(res *availability.InventoryResult) InventoryAvailabilityResponse {
	unavailable := make([]UnavailableItemResponse, len(res.UnavailableItems))
	for i, u := range res.UnavailableItems {
		unavailable[i] = UnavailableItemResponse{
			InventoryItemID:  u.ItemID,
			Name:             u.Name,
			RequiredQuantity: u.RequiredQuantity,
			AvailableStock:   u.AvailableStock,
			Reason:           u.Reason,
		}
	}
	lowStock := make([]LowStockItemResponse, len(res.LowStockItems))
	for i, l := range res.LowStockItems {
		lowStock[i] = LowStockItemResponse{
			InventoryItemID:  l.ItemID,
			Name:             l.Name,
			CurrentStock:     l.CurrentStock,
			MinimumThreshold: l.MinimumThreshold,
		}
	}
	return InventoryAvailabilityResponse{
		Available:        res.Available,
		UnavailableItems: unavailable,
		LowStockItems:    lowStock,
	}
}

func parseSlot(date, timeOfDay string, durationMinutes int, defaultDuration time.Duration) (booking.Interval, error) {
	start, err := time.ParseInLocation(dateTimeLayout, date+" "+timeOfDay, time.UTC)
	if err != nil {
		return booking.Interval{}, apperror.NewValidation("date must be YYYY-MM-DD and time must be HH:MM")
	}
	duration := defaultDuration
	if durationMinutes > 0 {
		duration = time.Duration(durationMinutes) * time.Minute
	}
	return booking.Interval{Start: start, End: start.Add(duration)}, nil
}
