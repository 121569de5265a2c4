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

type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
	permissionService *service.PermissionService
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService, permissionService *service.PermissionService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		permissionService: permissionService,
	}
}

// Roster godoc
// GET /api/v1/schedules/:id/enrollments
func (h *EnrollmentHandler) Roster(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	students, err := h.enrollmentService.ListBySchedule(c.Request.Context(), scheduleID)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	if students == nil {
		students = []model.EnrolledStudent{}
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// Enroll godoc
// POST /api/v1/schedules/:id/enrollments/:student_id
// Idempotent: enrolling an already-enrolled student succeeds without a
// second row.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	scheduleID, studentID, ok := pairParams(c)
	if !ok {
		return
	}
	if !h.canManage(c, scheduleID) {
		return
	}

	enr, created, err := h.enrollmentService.Enroll(c.Request.Context(), studentID, scheduleID)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"enrollment": enr, "created": created})
}

// Unenroll godoc
// DELETE /api/v1/schedules/:id/enrollments/:student_id
// A no-op when the student was not enrolled.
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	scheduleID, studentID, ok := pairParams(c)
	if !ok {
		return
	}
	if !h.canManage(c, scheduleID) {
		return
	}

	enr, err := h.enrollmentService.Unenroll(c.Request.Context(), studentID, scheduleID)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": enr != nil})
}

// BulkEnroll godoc
// POST /api/v1/schedules/:id/enrollments
func (h *EnrollmentHandler) BulkEnroll(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.canManage(c, scheduleID) {
		return
	}

	var req model.BulkEnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.enrollmentService.BulkEnroll(c.Request.Context(), scheduleID, req.StudentIDs)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"enrolled":  created,
		"requested": len(req.StudentIDs),
	})
}

// SyncRoster godoc
// POST /api/v1/schedules/:id/enrollments/sync
// Re-enrolls every active student of the schedule's class.
func (h *EnrollmentHandler) SyncRoster(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.canManage(c, scheduleID) {
		return
	}

	created, err := h.enrollmentService.EnrollClassRoster(c.Request.Context(), scheduleID)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrolled": created})
}

// canManage resolves the schedule's class and enforces the per-class
// permission; it writes the failure response itself.
func (h *EnrollmentHandler) canManage(c *gin.Context, scheduleID int) bool {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return false
	}
	ok, err := h.permissionService.CanManageSchedule(c.Request.Context(), claims, scheduleID)
	if err != nil {
		failScheduleErr(c, err)
		return false
	}
	if !ok {
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
		return false
	}
	return true
}

func pairParams(c *gin.Context) (scheduleID, studentID int, ok bool) {
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, 0, false
	}
	studentID, err = strconv.Atoi(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, 0, false
	}
	return scheduleID, studentID, true
}
