package resource

import (
	"net/http"
	"time"

	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "resource not found")
)

// Kind classifies a bookable unit.
type Kind string

const (
	KindRoom    Kind = "room"
	KindTable   Kind = "table"
	KindService Kind = "service"
)

// Status of a resource. Only StatusAvailable resources are bookable;
// maintenance and unavailable resources are excluded from availability
// checks up front.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMaintenance Status = "maintenance"
)

// Resource represents a bookable unit scoped to a property: a hotel room,
// a restaurant table, or a service slot (spa treatment, court, etc.).
//
// Capacity means guests for rooms, party size for tables, and the maximum
// number of concurrent bookings for services.
type Resource struct {
	ID         string
	PropertyID string
	Kind       Kind
	Name       string
	RoomType   string // rooms only, e.g. "standard", "deluxe"
	Capacity   int
	PriceCents int64
	Currency   string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing bookable resources.
type Filter struct {
	PropertyID  string
	Kind        Kind
	RoomType    string
	MinCapacity int
}
