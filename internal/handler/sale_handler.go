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

// ListSales returns all sales with their line items and customer
func ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var sales []model.Sale
	result := database.GetDB().
		Preload("Items").
		Preload("Customer").
		Order("sale_date desc").
		Find(&sales)
	if result.Error != nil {
		log.Error("Failed to retrieve sales", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve sales"})
	}

	return c.JSON(http.StatusOK, sales)
}

// CreateSale records a new sale with its line items
func CreateSale(c echo.Context) error {
	log := logger.FromContext(c)

	var sale model.Sale
	if err := c.Bind(&sale); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if !sale.Canteen.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid canteen"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := database.GetDB().Create(&sale); result.Error != nil {
		log.Error("Failed to create sale", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create sale"})
	}

	log.Info("Sale recorded successfully",
		zap.Uint("id", sale.ID),
		zap.Float64("total_amount", sale.TotalAmount),
		zap.String("canteen", string(sale.Canteen)))
	return c.JSON(http.StatusCreated, sale)
}

// Revenue returns the total revenue aggregated over all sales
func Revenue(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var totalRevenue float64
	result := database.GetDB().Model(&model.Sale{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue)
	if result.Error != nil {
		log.Error("Failed to aggregate revenue", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to aggregate revenue"})
	}

	return c.JSON(http.StatusOK, echo.Map{"totalRevenue": totalRevenue})
}
