package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/dto"
)

// ============ Администрирование пользователей ============

// GetUsers список всех пользователей
// @Summary Список пользователей
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/users [get]
func (h *APIHandler) GetUsers(c *gin.Context) {
	users, err := h.UserService.FindAll()
	if err != nil {
		logrus.Error("Error getting users: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения пользователей")
		return
	}

	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = toUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetUser один пользователь по ID
// @Summary Пользователь по ID
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/{id} [get]
func (h *APIHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID пользователя")
		return
	}

	user, err := h.UserService.FindByID(uint(id))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// CreateUser регистрация нового пользователя администратором
// @Summary Создание пользователя
// @Description Создает пользователя с ролью; дубликаты логина и email отклоняются
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Данные пользователя"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/admin/users [post]
func (h *APIHandler) CreateUser(c *gin.Context) {
	var request dto.CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user := &ds.User{
		Username: request.Username,
		FullName: request.FullName,
		Email:    request.Email,
		Phone:    request.Phone,
		Role:     request.Role,
	}

	user, err := h.UserService.CreateUser(user, request.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// ToggleUser включает/выключает учётную запись
// @Summary Активация/деактивация пользователя
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/{id}/toggle [put]
func (h *APIHandler) ToggleUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID пользователя")
		return
	}

	user, err := h.UserService.FindByID(uint(id))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	if user.Enabled {
		err = h.UserService.DisableUser(user.ID)
	} else {
		err = h.UserService.EnableUser(user.ID)
	}
	if err != nil {
		h.serviceError(c, err)
		return
	}

	user, err = h.UserService.FindByID(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetTechnicians возвращает активных техников (кандидаты на назначение)
// @Summary Список техников
// @Description Только включённые пользователи с ролью TECHNICIAN
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/users/technicians [get]
func (h *APIHandler) GetTechnicians(c *gin.Context) {
	technicians, err := h.UserService.FindAllTechnicians()
	if err != nil {
		logrus.Error("Error getting technicians: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения техников")
		return
	}

	// Отключённые не должны попадать в список кандидатов
	responses := make([]dto.UserResponse, 0, len(technicians))
	for i := range technicians {
		if technicians[i].Enabled {
			responses = append(responses, toUserResponse(&technicians[i]))
		}
	}
	c.JSON(http.StatusOK, responses)
}
