package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdantstay/hospitality-backend/internal/auth"
	"github.com/verdantstay/hospitality-backend/internal/availability"
	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
	"github.com/verdantstay/hospitality-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CheckRooms(c *gin.Context) {
	var body CheckRoomsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	stay, err := body.Stay()
	if err != nil {
		response.Error(c, err)
		return
	}

	req := availability.RoomRequest{
		TenantID:    auth.GetTenantID(c),
		PropertyID:  body.PropertyID,
		Stay:        stay,
		RoomType:    body.RoomType,
		MinCapacity: body.MinCapacity,
	}

	result, err := h.service.CheckRooms(c.Request.Context(), req)
	if err != nil {
		// Missing property/resources is a negative result, not a hard 404:
		// the availability-check contract stays uniform for clients.
		if apperror.IsNotFound(err) {
			response.OK(c, RoomAvailabilityResponse{
				AvailableRooms: []RoomResponse{},
				Reason:         err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, NewRoomAvailabilityResponse(result))
}

func (h *Handler) CheckTables(c *gin.Context) {
	var body CheckTablesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := body.Slot()
	if err != nil {
		response.Error(c, err)
		return
	}

	req := availability.TableRequest{
		TenantID:   auth.GetTenantID(c),
		PropertyID: body.PropertyID,
		PartySize:  body.PartySize,
		Slot:       slot,
	}

	result, err := h.service.CheckTables(c.Request.Context(), req)
	if err != nil {
		if apperror.IsNotFound(err) {
			response.OK(c, TableAvailabilityResponse{
				AvailableTables: []TableResponse{},
				Reason:          err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, NewTableAvailabilityResponse(result))
}

func (h *Handler) CheckService(c *gin.Context) {
	var body CheckServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := body.Slot()
	if err != nil {
		response.Error(c, err)
		return
	}

	req := availability.ServiceRequest{
		TenantID:   auth.GetTenantID(c),
		PropertyID: body.PropertyID,
		ServiceID:  body.ServiceID,
		Slot:       slot,
	}

	result, err := h.service.CheckService(c.Request.Context(), req)
	if err != nil {
		if apperror.IsNotFound(err) {
			response.OK(c, ServiceAvailabilityResponse{
				Available: false,
				Reason:    err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, NewServiceAvailabilityResponse(result))
}

func (h *Handler) CheckInventory(c *gin.Context) {
	var body CheckInventoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := availability.InventoryRequest{
		TenantID:   auth.GetTenantID(c),
		PropertyID: body.PropertyID,
		Items:      make([]availability.ItemRequest, len(body.Items)),
	}
	for i, item := range body.Items {
		req.Items[i] = availability.ItemRequest{
			ItemID:   item.InventoryItemID,
			Quantity: item.Quantity,
			Name:     item.Name,
		}
	}

	result, err := h.service.CheckInventory(c.Request.Context(), req)
	if err != nil {
		if apperror.IsNotFound(err) {
			response.OK(c, InventoryAvailabilityResponse{
				Available:        false,
				UnavailableItems: []UnavailableItemResponse{},
				LowStockItems:    []LowStockItemResponse{},
				Reason:           err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, NewInventoryAvailabilityResponse(result))
}
