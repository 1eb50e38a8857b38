package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
)

// InventoryHandler handles stock-related API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// AddStock adds quantity for a single product
func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req inventoryapp.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventoryService.AddStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// AddBulkStock adds quantities for several products in one request.
// The response always reports per-item outcomes, even when some fail.
func (h *InventoryHandler) AddBulkStock(c *gin.Context) {
	var req inventoryapp.AddBulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventoryService.AddBulkStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetAvailability returns the total quantity on hand for one product
func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	quantity, err := h.inventoryService.GetAvailableQuantity(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"product_id": productID, "quantity": quantity})
}

// GetConsolidatedStock returns the stock position summed per product
func (h *InventoryHandler) GetConsolidatedStock(c *gin.Context) {
	items, err := h.inventoryService.GetConsolidatedStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}
