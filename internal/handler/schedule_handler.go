package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lophocvn/lophoc-backend/internal/middleware"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/lophocvn/lophoc-backend/internal/response"
	"github.com/lophocvn/lophoc-backend/internal/service"
	"github.com/lophocvn/lophoc-backend/internal/validator"
	"github.com/lophocvn/lophoc-backend/internal/weekkey"
)

type ScheduleHandler struct {
	scheduleService   *service.ScheduleService
	permissionService *service.PermissionService
}

func NewScheduleHandler(scheduleService *service.ScheduleService, permissionService *service.PermissionService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService:   scheduleService,
		permissionService: permissionService,
	}
}

// List godoc
// GET /api/v1/schedules?week=&class_id=&teacher_id=&day=
func (h *ScheduleHandler) List(c *gin.Context) {
	filter := repository.ScheduleFilter{OrderByDayTime: true}

	if week := c.Query("week"); week != "" {
		if !weekkey.IsValid(week) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidWeekKey)
			return
		}
		filter.WeekKey = &week
	}
	var ok bool
	if filter.ClassID, ok = intQuery(c, "class_id"); !ok {
		return
	}
	if filter.TeacherID, ok = intQuery(c, "teacher_id"); !ok {
		return
	}
	if filter.DayOfWeek, ok = intQuery(c, "day"); !ok {
		return
	}

	schedules, err := h.scheduleService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	response.Success(c, http.StatusOK, gin.H{"schedules": schedules})
}

// Get godoc
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sched, err := h.scheduleService.GetByID(c.Request.Context(), id)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedule": sched})
}

// Create godoc
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req model.CreateScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if !h.canManage(c, req.ClassID) {
		return
	}

	sched, enrolled, err := h.scheduleService.Create(c.Request.Context(), &req)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"schedule":          sched,
		"enrolled_students": enrolled,
	})
}

// Update godoc
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// The actor must manage the class the schedule belongs to today AND
	// the class it is being moved to, or a manager could capture another
	// manager's schedule by re-pointing it at their own class.
	cur, err := h.scheduleService.GetByID(c.Request.Context(), id)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	if !h.canManage(c, cur.ClassID) {
		return
	}
	if req.ClassID != cur.ClassID && !h.canManage(c, req.ClassID) {
		return
	}

	sched, err := h.scheduleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedule": sched})
}

// Delete godoc
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sched, err := h.scheduleService.GetByID(c.Request.Context(), id)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	if !h.canManage(c, sched.ClassID) {
		return
	}

	summary, err := h.scheduleService.Deactivate(c.Request.Context(), id)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": summary})
}

// CopyWeek godoc
// POST /api/v1/schedules/copy-week
func (h *ScheduleHandler) CopyWeek(c *gin.Context) {
	var req model.CopyWeekRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if req.SourceWeek == req.TargetWeek {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"target_week": "Tuần đích phải khác tuần nguồn."})
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, err := h.scheduleService.CopyWeek(c.Request.Context(), &req, h.permissionService.Predicate(claims))
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	if result.SourceSchedules == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrEmptySourceWeek)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"copy": result})
}

// Timetable godoc
// GET /api/v1/timetable?week= (defaults to the current week)
func (h *ScheduleHandler) Timetable(c *gin.Context) {
	week := c.Query("week")
	if week == "" {
		week = weekkey.Current()
	}
	if !weekkey.IsValid(week) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidWeekKey)
		return
	}

	t, err := h.scheduleService.Timetable(c.Request.Context(), week)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"timetable": t})
}

// Weeks godoc
// GET /api/v1/weeks — the current and next week keys for pickers.
func (h *ScheduleHandler) Weeks(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"current": weekkey.Current(),
		"next":    weekkey.Next(),
	})
}

// intQuery parses an optional integer query param. A false return means an
// error response has already been written.
func intQuery(c *gin.Context, param string) (*int, bool) {
	raw := c.Query(param)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}
	return &v, true
}

// canManage enforces the per-class permission and writes the failure
// response itself; callers just return on false.
func (h *ScheduleHandler) canManage(c *gin.Context, classID int) bool {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return false
	}
	ok, err := h.permissionService.CanManage(c.Request.Context(), claims, classID)
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

// failScheduleErr maps schedule domain errors onto the response catalog.
func failScheduleErr(c *gin.Context, err error) {
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		code := response.ErrTeacherConflict
		if conflict.Scope == model.ConflictScopeClass {
			code = response.ErrClassConflict
		}
		if conflict.Existing != nil {
			response.FailWithDetails(c, http.StatusConflict, code, gin.H{"existing": conflict.Existing})
			return
		}
		response.Fail(c, http.StatusConflict, code)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTimeRange)
	case errors.Is(err, service.ErrScheduleNotFound),
		errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrTeacherNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidMonth):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"month": "Tháng phải có định dạng YYYY-MM."})
	case errors.Is(err, service.ErrScheduleInactive):
		response.Fail(c, http.StatusConflict, response.ErrScheduleInactive)
	case errors.Is(err, service.ErrClassInactive):
		response.Fail(c, http.StatusConflict, response.ErrClassInactive)
	case errors.Is(err, service.ErrTeacherInactive):
		response.Fail(c, http.StatusConflict, response.ErrTeacherInactive)
	case errors.Is(err, service.ErrStudentInactive):
		response.Fail(c, http.StatusConflict, response.ErrStudentInactive)
	case errors.Is(err, service.ErrNotEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrNotEnrolled)
	case errors.Is(err, service.ErrPermissionDenied):
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
