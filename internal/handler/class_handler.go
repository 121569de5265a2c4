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

type ClassHandler struct {
	classService *service.ClassService
}

func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List godoc
// GET /api/v1/classes
// Managers only see their own classes; admins and teachers see all.
func (h *ClassHandler) List(c *gin.Context) {
	managerID := 0
	if claims := middleware.GetClaims(c); claims != nil && claims.Role == model.RoleManager {
		managerID = claims.UserID
	}

	classes, err := h.classService.List(c.Request.Context(), managerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// Get godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Create godoc
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// Update godoc
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Delete godoc
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.Deactivate(c.Request.Context(), id); err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "class deactivated"})
}
