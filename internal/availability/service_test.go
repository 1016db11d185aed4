package availability

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantstay/hospitality-backend/internal/booking"
	"github.com/verdantstay/hospitality-backend/internal/inventory"
	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
	"github.com/verdantstay/hospitality-backend/internal/property"
	"github.com/verdantstay/hospitality-backend/internal/resource"
)

const (
	testTenant   = "tenant-1"
	testProperty = "prop-1"
)

// --- in-memory fakes implementing the repository interfaces ---

type fakeProperties struct {
	props map[string]*property.Property
	err   error
}

func (f *fakeProperties) GetByID(_ context.Context, tenantID, id string) (*property.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.props[id]
	if !ok || (tenantID != "" && p.TenantID != tenantID) {
		return nil, property.ErrNotFound
	}
	return p, nil
}

type fakeResources struct {
	resources []*resource.Resource
	err       error
}

func (f *fakeResources) GetByID(_ context.Context, id string) (*resource.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, resource.ErrNotFound
}

func (f *fakeResources) ListBookable(_ context.Context, filter resource.Filter) ([]*resource.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*resource.Resource
	for _, r := range f.resources {
		if r.PropertyID != filter.PropertyID || r.Status != resource.StatusAvailable {
			continue
		}
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.RoomType != "" && r.RoomType != filter.RoomType {
			continue
		}
		if filter.MinCapacity > 0 && r.Capacity < filter.MinCapacity {
			continue
		}
		out = append(out, r)
	}
	// Mirror the repository's sort contract.
	sort.SliceStable(out, func(i, j int) bool {
		switch filter.Kind {
		case resource.KindRoom:
			return out[i].PriceCents < out[j].PriceCents
		case resource.KindTable:
			return out[i].Capacity < out[j].Capacity
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out, nil
}

type fakeBookings struct {
	bookings []*booking.Booking
	err      error
}

func (f *fakeBookings) ListBlocking(_ context.Context, filter booking.Filter) ([]*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*booking.Booking
	for _, b := range f.bookings {
		if !b.Status.Blocking() {
			continue
		}
		if filter.PropertyID != "" && b.PropertyID != filter.PropertyID {
			continue
		}
		if len(filter.ResourceIDs) > 0 && !contains(filter.ResourceIDs, b.ResourceID) {
			continue
		}
		if !b.Interval().Overlaps(filter.Window) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeInventory struct {
	items   map[string]*inventory.Item
	failIDs map[string]error
}

func (f *fakeInventory) GetByID(_ context.Context, propertyID, id string) (*inventory.Item, error) {
	if err, ok := f.failIDs[id]; ok {
		return nil, err
	}
	item, ok := f.items[id]
	if !ok || item.PropertyID != propertyID {
		return nil, inventory.ErrNotFound
	}
	return item, nil
}

// --- fixtures ---

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour int) time.Time {
	return time.Date(2026, 6, d, hour, 0, 0, 0, time.UTC)
}

func room(id string, priceCents int64, capacity int) *resource.Resource {
	return &resource.Resource{
		ID: id, PropertyID: testProperty, Kind: resource.KindRoom,
		Name: id, RoomType: "standard", Capacity: capacity,
		PriceCents: priceCents, Currency: "USD",
		Status: resource.StatusAvailable,
	}
}

func table(id string, capacity int) *resource.Resource {
	return &resource.Resource{
		ID: id, PropertyID: testProperty, Kind: resource.KindTable,
		Name: id, Capacity: capacity, Status: resource.StatusAvailable,
	}
}

func confirmed(resourceID string, start, end time.Time) *booking.Booking {
	return &booking.Booking{
		ID: "b-" + resourceID, PropertyID: testProperty, ResourceID: resourceID,
		StartTime: start, EndTime: end, Status: booking.StatusConfirmed,
	}
}

func newTestService(resources []*resource.Resource, bookings []*booking.Booking, items map[string]*inventory.Item) Service {
	return NewService(
		&fakeProperties{props: map[string]*property.Property{
			testProperty: {ID: testProperty, TenantID: testTenant, Name: "Seaside", Kind: property.KindHotel},
		}},
		&fakeResources{resources: resources},
		&fakeBookings{bookings: bookings},
		&fakeInventory{items: items},
	)
}

// --- rooms ---

func TestCheckRoomsValidation(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID: testTenant,
		Stay:     booking.Interval{Start: day(1), End: day(2)},
	})
	require.ErrorIs(t, err, ErrPropertyRequired)

	_, err = svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(2), End: day(1)},
	})
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCheckRoomsUnknownProperty(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: "nope",
		Stay:       booking.Interval{Start: day(1), End: day(2)},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCheckRoomsOverlapBlocks(t *testing.T) {
	// R1 booked [Jun 1, Jun 3)
	svc := newTestService(
		[]*resource.Resource{room("R1", 10000, 2)},
		[]*booking.Booking{confirmed("R1", day(1), day(3))},
		nil,
	)

	// Overlapping request [Jun 2, Jun 4) -> unavailable
	res, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(2), End: day(4)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalRooms)
	assert.Equal(t, 0, res.TotalAvailable)
	assert.Empty(t, res.AvailableRooms)

	// Boundary touch [Jun 3, Jun 5) -> available (half-open)
	res, err = svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(3), End: day(5)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalAvailable)
	require.Len(t, res.AvailableRooms, 1)
	assert.Equal(t, "R1", res.AvailableRooms[0].ID)
}

func TestCheckRoomsCancelledNeverBlocks(t *testing.T) {
	cancelled := &booking.Booking{
		ID: "b1", PropertyID: testProperty, ResourceID: "R1",
		StartTime: day(1), EndTime: day(3), Status: booking.StatusCancelled,
	}
	svc := newTestService(
		[]*resource.Resource{room("R1", 10000, 2)},
		[]*booking.Booking{cancelled},
		nil,
	)

	// Identical interval to the cancelled booking -> available
	res, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(1), End: day(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalAvailable)
}

func TestCheckRoomsSortedByPrice(t *testing.T) {
	svc := newTestService(
		[]*resource.Resource{room("expensive", 30000, 2), room("cheap", 9000, 2), room("mid", 15000, 2)},
		nil, nil,
	)

	res, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(1), End: day(2)},
	})
	require.NoError(t, err)
	require.Len(t, res.AvailableRooms, 3)
	assert.Equal(t, "cheap", res.AvailableRooms[0].ID)
	assert.Equal(t, "mid", res.AvailableRooms[1].ID)
	assert.Equal(t, "expensive", res.AvailableRooms[2].ID)
}

func TestCheckRoomsZeroCandidatesIsNotAnError(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	res, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(1), End: day(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalRooms)
	assert.NotNil(t, res.AvailableRooms)
	assert.Empty(t, res.AvailableRooms)
}

func TestCheckRoomsStoreFailure(t *testing.T) {
	svc := NewService(
		&fakeProperties{props: map[string]*property.Property{
			testProperty: {ID: testProperty, TenantID: testTenant},
		}},
		&fakeResources{err: errors.New("connection refused")},
		&fakeBookings{},
		&fakeInventory{},
	)

	_, err := svc.CheckRooms(context.Background(), RoomRequest{
		TenantID:   testTenant,
		PropertyID: testProperty,
		Stay:       booking.Interval{Start: day(1), End: day(2)},
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

// --- tables ---

func TestCheckTablesCapacityInclusive(t *testing.T) {
	svc := newTestService([]*resource.Resource{table("T4", 4)}, nil, nil)
	slot := booking.Interval{Start: at(5, 19), End: at(5, 21)}

	// Party size exactly equal to capacity matches.
	res, err := svc.CheckTables(context.Background(), TableRequest{
		TenantID: testTenant, PropertyID: testProperty, PartySize: 4, Slot: slot,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalAvailable)

	// One more guest than capacity does not.
	res, err = svc.CheckTables(context.Background(), TableRequest{
		TenantID: testTenant, PropertyID: testProperty, PartySize: 5, Slot: slot,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalTables)
	assert.Empty(t, res.AvailableTables)
}

func TestCheckTablesSortedByCapacity(t *testing.T) {
	svc := newTestService(
		[]*resource.Resource{table("T8", 8), table("T2", 2), table("T4", 4)},
		nil, nil,
	)

	res, err := svc.CheckTables(context.Background(), TableRequest{
		TenantID: testTenant, PropertyID: testProperty, PartySize: 2,
		Slot: booking.Interval{Start: at(5, 19), End: at(5, 21)},
	})
	require.NoError(t, err)
	require.Len(t, res.AvailableTables, 3)
	// Smallest adequate table first.
	assert.Equal(t, "T2", res.AvailableTables[0].ID)
	assert.Equal(t, "T4", res.AvailableTables[1].ID)
	assert.Equal(t, "T8", res.AvailableTables[2].ID)
}

func TestCheckTablesOccupiedExcluded(t *testing.T) {
	svc := newTestService(
		[]*resource.Resource{table("T1", 4), table("T2", 4)},
		[]*booking.Booking{confirmed("T1", at(5, 19), at(5, 21))},
		nil,
	)

	res, err := svc.CheckTables(context.Background(), TableRequest{
		TenantID: testTenant, PropertyID: testProperty, PartySize: 4,
		Slot: booking.Interval{Start: at(5, 20), End: at(5, 22)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalTables)
	require.Len(t, res.AvailableTables, 1)
	assert.Equal(t, "T2", res.AvailableTables[0].ID)
}

func TestCheckTablesValidation(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CheckTables(context.Background(), TableRequest{
		TenantID: testTenant, PropertyID: testProperty, PartySize: 0,
		Slot: booking.Interval{Start: at(5, 19), End: at(5, 21)},
	})
	require.ErrorIs(t, err, ErrPartySizeRequired)
}

// --- services ---

func spaService(capacity int) *resource.Resource {
	return &resource.Resource{
		ID: "spa-1", PropertyID: testProperty, Kind: resource.KindService,
		Name: "Massage", Capacity: capacity, PriceCents: 8000, Currency: "USD",
		Status: resource.StatusAvailable,
	}
}

func TestCheckServiceRemainingCapacity(t *testing.T) {
	slot := booking.Interval{Start: at(5, 14), End: at(5, 15)}
	svc := newTestService(
		[]*resource.Resource{spaService(3)},
		[]*booking.Booking{
			confirmed("spa-1", at(5, 14), at(5, 15)),
			{ID: "p1", PropertyID: testProperty, ResourceID: "spa-1",
				StartTime: at(5, 14), EndTime: at(5, 15), Status: booking.StatusPending},
		},
		nil,
	)

	res, err := svc.CheckService(context.Background(), ServiceRequest{
		TenantID: testTenant, PropertyID: testProperty, ServiceID: "spa-1", Slot: slot,
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 1, res.RemainingCapacity)
	assert.Equal(t, 3, res.MaxCapacity)
}

func TestCheckServiceFullyBooked(t *testing.T) {
	slot := booking.Interval{Start: at(5, 14), End: at(5, 15)}
	svc := newTestService(
		[]*resource.Resource{spaService(1)},
		[]*booking.Booking{confirmed("spa-1", at(5, 14), at(5, 15))},
		nil,
	)

	res, err := svc.CheckService(context.Background(), ServiceRequest{
		TenantID: testTenant, PropertyID: testProperty, ServiceID: "spa-1", Slot: slot,
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, 0, res.RemainingCapacity)
	assert.NotEmpty(t, res.Reason)
}

func TestCheckServiceUnknown(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CheckService(context.Background(), ServiceRequest{
		TenantID: testTenant, PropertyID: testProperty, ServiceID: "ghost",
		Slot: booking.Interval{Start: at(5, 14), End: at(5, 15)},
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCheckServiceUnderMaintenance(t *testing.T) {
	maint := spaService(3)
	maint.Status = resource.StatusMaintenance
	svc := newTestService([]*resource.Resource{maint}, nil, nil)

	res, err := svc.CheckService(context.Background(), ServiceRequest{
		TenantID: testTenant, PropertyID: testProperty, ServiceID: "spa-1",
		Slot: booking.Interval{Start: at(5, 14), End: at(5, 15)},
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.NotEmpty(t, res.Reason)
}

// --- inventory ---

func item(id string, stock, threshold int) *inventory.Item {
	return &inventory.Item{
		ID: id, PropertyID: testProperty, Name: id,
		CurrentStock: stock, MinimumThreshold: threshold,
	}
}

func TestCheckInventoryExactStock(t *testing.T) {
	svc := newTestService(nil, nil, map[string]*inventory.Item{
		"towels": item("towels", 10, 5),
	})

	// quantity == current stock succeeds, no low-stock warning (10 > 5)
	res, err := svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
		Items: []ItemRequest{{ItemID: "towels", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Empty(t, res.UnavailableItems)
	assert.Empty(t, res.LowStockItems)

	// one over current stock fails with the shortfall reported
	res, err = svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
		Items: []ItemRequest{{ItemID: "towels", Quantity: 11}},
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.UnavailableItems, 1)
	assert.Equal(t, 11, res.UnavailableItems[0].RequiredQuantity)
	assert.Equal(t, 10, res.UnavailableItems[0].AvailableStock)
}

func TestCheckInventoryLowStockIsNotBlocking(t *testing.T) {
	svc := newTestService(nil, nil, map[string]*inventory.Item{
		"soap": item("soap", 4, 5),
	})

	res, err := svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
		Items: []ItemRequest{{ItemID: "soap", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, res.Available, "low stock alone must not block")
	require.Len(t, res.LowStockItems, 1)
	assert.Equal(t, 4, res.LowStockItems[0].CurrentStock)
	assert.Equal(t, 5, res.LowStockItems[0].MinimumThreshold)
}

func TestCheckInventorySingleFailureDoesNotAbortBatch(t *testing.T) {
	svc := NewService(
		&fakeProperties{props: map[string]*property.Property{
			testProperty: {ID: testProperty, TenantID: testTenant},
		}},
		&fakeResources{},
		&fakeBookings{},
		&fakeInventory{
			items:   map[string]*inventory.Item{"towels": item("towels", 10, 2)},
			failIDs: map[string]error{"broken": errors.New("query timeout")},
		},
	)

	res, err := svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
		Items: []ItemRequest{
			{ItemID: "broken", Quantity: 1},
			{ItemID: "towels", Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.UnavailableItems, 1)
	assert.Equal(t, "broken", res.UnavailableItems[0].ItemID)
	assert.Equal(t, "Error checking availability", res.UnavailableItems[0].Reason)
}

func TestCheckInventoryUnknownItem(t *testing.T) {
	svc := newTestService(nil, nil, map[string]*inventory.Item{})

	res, err := svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
		Items: []ItemRequest{{ItemID: "ghost", Quantity: 1, Name: "Ghost"}},
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.UnavailableItems, 1)
	assert.Equal(t, "item not found", res.UnavailableItems[0].Reason)
}

func TestCheckInventoryValidation(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
	})
	require.ErrorIs(t, err, ErrItemsRequired)

	_, err = svc.CheckInventory(context.Background(), InventoryRequest{
		TenantID: testTenant, PropertyID: testProperty,
		Items: []ItemRequest{{ItemID: "towels", Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}
