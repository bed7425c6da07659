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

// ListCustomers returns all customers
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var customers []model.Customer
	if result := database.GetDB().Order("created_at desc").Find(&customers); result.Error != nil {
		log.Error("Failed to retrieve customers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve customers"})
	}

	return c.JSON(http.StatusOK, customers)
}

// CreateCustomer creates a new customer
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	var customer model.Customer
	if err := c.Bind(&customer); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := database.GetDB().Create(&customer); result.Error != nil {
		log.Error("Failed to create customer", zap.String("name", customer.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create customer"})
	}

	log.Info("Customer created successfully",
		zap.Uint("id", customer.ID),
		zap.String("name", customer.Name))
	return c.JSON(http.StatusCreated, customer)
}
