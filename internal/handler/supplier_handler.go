package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/database"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// ListSuppliers returns all suppliers
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var suppliers []model.Supplier
	if result := database.GetDB().Order("created_at desc").Find(&suppliers); result.Error != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve suppliers"})
	}

	return c.JSON(http.StatusOK, suppliers)
}

// CreateSupplier creates a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)

	var supplier model.Supplier
	if err := c.Bind(&supplier); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if supplier.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := database.GetDB().Create(&supplier); result.Error != nil {
		log.Error("Failed to create supplier", zap.String("name", supplier.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create supplier"})
	}

	log.Info("Supplier created successfully",
		zap.Uint("id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}
