package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/ledger"
	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// AttendanceHandler exposes the attendance ledger and the leave balance
// calculator over HTTP.
type AttendanceHandler struct {
	svc ledger.UseCase
}

// NewAttendanceHandler creates an attendance handler over the given ledger.
func NewAttendanceHandler(svc ledger.UseCase) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// AttendanceRequest is one attendance submission
type AttendanceRequest struct {
	EmployeeID uint            `json:"employeeId"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	LeaveType  model.LeaveType `json:"leaveType,omitempty"`
}

// parseDate accepts a plain calendar day or a full timestamp; any
// time-of-day component is discarded by the ledger anyway.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Submit records or overwrites one daily status for an employee
func (h *AttendanceHandler) Submit(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttendanceOperation("submit")

	var req AttendanceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		log.Error("Invalid date", zap.String("date", req.Date), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	defer prometheus.TrackDBOperation("upsert")(time.Now())

	record, err := h.svc.RecordAttendance(c.Request().Context(), ledger.RecordInput{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     model.AttendanceStatus(req.Status),
		LeaveType:  req.LeaveType,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidEmployee),
			errors.Is(err, ledger.ErrInvalidDate),
			errors.Is(err, ledger.ErrInvalidStatus),
			errors.Is(err, ledger.ErrInvalidLeaveType):
			log.Warn("Attendance submission rejected", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			log.Error("Failed to save attendance record", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save attendance record"})
		}
	}

	log.Info("Attendance recorded",
		zap.Uint("employee_id", record.EmployeeID),
		zap.Time("date", record.Date),
		zap.String("status", string(record.Status)),
		zap.String("leave_type", string(record.LeaveType)))
	return c.JSON(http.StatusCreated, record)
}

// ByEmployee returns an employee's records, optionally filtered to one year
func (h *AttendanceHandler) ByEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttendanceOperation("query")

	employeeID, err := strconv.ParseUint(c.Param("employeeId"), 10, 32)
	if err != nil || employeeID == 0 {
		log.Error("Invalid employee ID", zap.String("employee_id", c.Param("employeeId")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee ID"})
	}

	year := 0
	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid year"})
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	records, err := h.svc.EmployeeAttendance(c.Request().Context(), uint(employeeID), year)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidEmployee) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employee ID"})
		}
		log.Error("Failed to fetch attendance records",
			zap.Uint64("employee_id", employeeID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch attendance records"})
	}

	return c.JSON(http.StatusOK, records)
}

// RollCall returns the present/absent snapshot of every employee for a day
func (h *AttendanceHandler) RollCall(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttendanceOperation("rollcall")

	var date time.Time
	if dateStr := c.QueryParam("date"); dateStr != "" {
		var err error
		date, err = parseDate(dateStr)
		if err != nil {
			log.Error("Invalid date", zap.String("date", dateStr), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	entries, err := h.svc.DailyRollCall(c.Request().Context(), date)
	if err != nil {
		log.Error("Failed to build daily roll call", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(http.StatusOK, entries)
}

// LeaveBalances returns the remaining leave per category for an employee
func (h *AttendanceHandler) LeaveBalances(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAttendanceOperation("leave_balance")

	employeeID, err := strconv.ParseUint(c.Param("employeeId"), 10, 32)
	if err != nil || employeeID == 0 {
		log.Error("Invalid employee ID", zap.String("employee_id", c.Param("employeeId")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employeeId"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	balances, err := h.svc.LeaveBalances(c.Request().Context(), uint(employeeID))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidEmployee):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid employeeId"})
		case errors.Is(err, ledger.ErrEmployeeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
		default:
			log.Error("Failed to compute leave balances",
				zap.Uint64("employee_id", employeeID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute leave balances"})
		}
	}

	return c.JSON(http.StatusOK, balances)
}
