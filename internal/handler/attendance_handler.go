package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lophocvn/lophoc-backend/internal/middleware"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/response"
	"github.com/lophocvn/lophoc-backend/internal/service"
	"github.com/lophocvn/lophoc-backend/internal/validator"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	permissionService *service.PermissionService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, permissionService *service.PermissionService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		permissionService: permissionService,
	}
}

// Mark godoc
// POST /api/v1/attendance
// Re-marking the same (schedule, student, date) updates the record. Only
// the schedule's teacher or a manager of its class may mark.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	ok, err := h.permissionService.CanMark(c.Request.Context(), claims, req.ScheduleID)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	if !ok {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return
	}

	a, err := h.attendanceService.Mark(c.Request.Context(), &req)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": a})
}

// ListBySchedule godoc
// GET /api/v1/schedules/:id/attendance?date=
func (h *AttendanceHandler) ListBySchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var date *string
	if raw := c.Query("date"); raw != "" {
		date = &raw
	}

	records, err := h.attendanceService.ListBySchedule(c.Request.Context(), scheduleID, date)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
