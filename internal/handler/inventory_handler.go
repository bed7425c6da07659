package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/internal/stock"
	"github.com/rems1212/Employee-Canteen/pkg/database"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// InventoryHandler exposes the inventory stock ledger over HTTP.
type InventoryHandler struct {
	svc stock.UseCase
}

// NewInventoryHandler creates an inventory handler over the given stock ledger.
func NewInventoryHandler(svc stock.UseCase) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List returns the inventory of the caller's canteen
func (h *InventoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("list")

	canteen := c.Get("canteen").(model.Canteen)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var items []model.Inventory
	result := database.GetDB().Where("canteen = ?", canteen).Order("item_name asc").Find(&items)
	if result.Error != nil {
		log.Error("Failed to retrieve inventory",
			zap.String("canteen", string(canteen)),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve inventory"})
	}

	return c.JSON(http.StatusOK, items)
}

// Add creates a new inventory item in the caller's canteen
func (h *InventoryHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("add")

	var req struct {
		ItemName string  `json:"itemName"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.ItemName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "itemName is required"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}

	// Canteen always comes from the token, never from the body
	canteen := c.Get("canteen").(model.Canteen)

	item := model.Inventory{
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Price:    req.Price,
		Canteen:  canteen,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := database.GetDB().Create(&item); result.Error != nil {
		log.Error("Failed to create inventory item",
			zap.String("item_name", req.ItemName),
			zap.String("canteen", string(canteen)),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create inventory item"})
	}

	log.Info("Inventory item added",
		zap.Uint("id", item.ID),
		zap.String("item_name", item.ItemName),
		zap.Int("quantity", item.Quantity),
		zap.String("canteen", string(item.Canteen)))
	return c.JSON(http.StatusCreated, item)
}

// Use consumes stock from an item and appends a usage record
func (h *InventoryHandler) Use(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("use")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid inventory item ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid inventory item ID"})
	}

	var req struct {
		QuantityUsed int `json:"quantityUsed"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("item_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid quantityUsed value"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	item, err := h.svc.UseStock(c.Request().Context(), uint(id), req.QuantityUsed)
	if err != nil {
		switch {
		case errors.Is(err, stock.ErrInvalidQuantity):
			log.Warn("Invalid quantityUsed", zap.Uint64("item_id", id), zap.Int("quantity_used", req.QuantityUsed))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid quantityUsed value"})
		case errors.Is(err, stock.ErrItemNotFound):
			log.Warn("Inventory item not found", zap.Uint64("item_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
		case errors.Is(err, stock.ErrInsufficientStock):
			log.Warn("Insufficient stock",
				zap.Uint64("item_id", id),
				zap.Int("quantity_used", req.QuantityUsed))
			prometheus.InsufficientStockCounter.Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Insufficient stock"})
		default:
			log.Error("Failed to use stock", zap.Uint64("item_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update inventory"})
		}
	}

	log.Info("Stock consumed",
		zap.Uint("item_id", item.ID),
		zap.String("item_name", item.ItemName),
		zap.Int("quantity_used", req.QuantityUsed),
		zap.Int("quantity_left", item.Quantity))
	return c.JSON(http.StatusOK, item)
}

// UsageHistory returns all usage records joined with item details,
// most recent first
func (h *InventoryHandler) UsageHistory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("history")

	defer prometheus.TrackDBOperation("query")(time.Now())

	entries, err := h.svc.UsageHistory(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve usage history", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve usage history"})
	}

	return c.JSON(http.StatusOK, entries)
}
