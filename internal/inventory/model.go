package inventory

import (
	"net/http"
	"time"

	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "inventory item not found")
)

// Item is a stocked inventory item (linens, minibar goods, kitchen
// supplies) scoped to a property.
type Item struct {
	ID               string
	PropertyID       string
	Name             string
	CurrentStock     int
	MinimumThreshold int
	Unit             string
	UpdatedAt        time.Time
}

// LowStock reports whether the item sits at or below its reorder threshold.
func (i *Item) LowStock() bool {
	return i.CurrentStock <= i.MinimumThreshold
}
