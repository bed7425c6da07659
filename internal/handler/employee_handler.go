package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/database"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// EmployeeRequest defines the structure for employee creation/update requests
type EmployeeRequest struct {
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone"`
	Address  string                 `json:"address"`
	Category model.EmployeeCategory `json:"category"`
	Salary   float64                `json:"salary"`
}

// CreateEmployee creates a new employee in the caller's canteen. When the
// caller is a manager, the employee is linked to that manager.
func CreateEmployee(c echo.Context) error {
	log := logger.FromContext(c)

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Category != "" && !req.Category.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	canteen := c.Get("canteen").(model.Canteen)
	role, _ := c.Get("role").(model.Role)

	employee := model.Employee{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Category: req.Category,
		Salary:   req.Salary,
		Canteen:  canteen,
	}
	if role == model.RoleManager {
		employee.ManagerID = &userID
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := database.GetDB().Create(&employee); result.Error != nil {
		log.Error("Failed to create employee",
			zap.String("name", req.Name),
			zap.String("canteen", string(canteen)),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create employee"})
	}

	log.Info("Employee created successfully",
		zap.Uint("id", employee.ID),
		zap.String("name", employee.Name),
		zap.String("canteen", string(employee.Canteen)))
	return c.JSON(http.StatusCreated, employee)
}

// ListEmployees returns the employees of the caller's canteen. A manager
// only sees the employees they created.
func ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)

	canteen := c.Get("canteen").(model.Canteen)
	role, _ := c.Get("role").(model.Role)
	userID, _ := c.Get("user_id").(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())

	query := database.GetDB().Where("canteen = ?", canteen)
	if role == model.RoleManager {
		query = query.Where("manager_id = ?", userID)
	}

	var employees []model.Employee
	if result := query.Order("name asc").Find(&employees); result.Error != nil {
		log.Error("Failed to retrieve employees",
			zap.String("canteen", string(canteen)),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve employees"})
	}

	return c.JSON(http.StatusOK, employees)
}

// ListEmployeesByCategory returns all employees with the given job category
func ListEmployeesByCategory(c echo.Context) error {
	log := logger.FromContext(c)

	category := model.EmployeeCategory(c.Param("category"))
	if !category.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var employees []model.Employee
	if result := database.GetDB().Where("category = ?", category).Find(&employees); result.Error != nil {
		log.Error("Failed to retrieve employees by category",
			zap.String("category", string(category)),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve employees"})
	}

	return c.JSON(http.StatusOK, employees)
}

// UpdateEmployee updates an existing employee by ID
func UpdateEmployee(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid employee ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee ID"})
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Category != "" && !req.Category.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}

	var employee model.Employee
	if result := database.GetDB().First(&employee, id); result.Error != nil {
		log.Error("Employee not found for update", zap.Uint64("employee_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Employee not found"})
	}

	employee.Name = req.Name
	employee.Email = req.Email
	employee.Phone = req.Phone
	employee.Address = req.Address
	employee.Category = req.Category
	employee.Salary = req.Salary

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := database.GetDB().Save(&employee); result.Error != nil {
		log.Error("Failed to update employee", zap.Uint64("employee_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update employee"})
	}

	log.Info("Employee updated successfully",
		zap.Uint64("employee_id", id),
		zap.String("name", employee.Name))
	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes an employee by ID (hard delete)
func DeleteEmployee(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid employee ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee ID"})
	}

	var employee model.Employee
	if result := database.GetDB().First(&employee, id); result.Error != nil {
		log.Warn("Employee not found for delete", zap.Uint64("employee_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Employee not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if result := database.GetDB().Delete(&employee); result.Error != nil {
		log.Error("Failed to delete employee", zap.Uint64("employee_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete employee"})
	}

	log.Info("Employee deleted successfully", zap.Uint64("employee_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Employee deleted successfully"})
}
