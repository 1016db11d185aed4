package property

import (
	"net/http"
	"time"

	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "property not found")
)

// Kind classifies a property.
type Kind string

const (
	KindHotel      Kind = "hotel"
	KindRestaurant Kind = "restaurant"
)

// Property represents a hotel or restaurant owned by a tenant. Every
// resource, booking, and inventory item is scoped to exactly one property.
type Property struct {
	ID        string
	TenantID  string
	Name      string
	Kind      Kind
	Timezone  string
	CreatedAt time.Time
}
