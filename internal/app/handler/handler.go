package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"repairportal/internal/app/config"
	"repairportal/internal/app/ds"
	"repairportal/internal/app/dto"
	"repairportal/internal/app/redis"
	"repairportal/internal/app/role"
	"repairportal/internal/app/service"
	"repairportal/internal/app/storage"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	OrderService *service.OrderService
	UserService  *service.UserService
	MinIOClient  *storage.MinIOClient
	RedisClient  *redis.Client
	Config       *config.Config
}

func NewAPIHandler(orderService *service.OrderService, userService *service.UserService,
	minioClient *storage.MinIOClient, redisClient *redis.Client, cfg *config.Config) *APIHandler {
	return &APIHandler{
		OrderService: orderService,
		UserService:  userService,
		MinIOClient:  minioClient,
		RedisClient:  redisClient,
		Config:       cfg,
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// serviceError переводит типизированные ошибки сервисов в HTTP-статусы
func (h *APIHandler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrUserNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBadCredentials), errors.Is(err, service.ErrUserDisabled):
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		logrus.Error(err)
		h.errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, "", fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ Преобразование в DTO ============

func (h *APIHandler) toOrderResponse(order *ds.RepairOrder) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		Status:             order.Status,
		Priority:           order.Priority,
		ClientName:         order.ClientName,
		ClientPhone:        order.ClientPhone,
		ClientEmail:        order.ClientEmail,
		ClientAddress:      order.ClientAddress,
		ApplianceType:      order.ApplianceType,
		ApplianceBrand:     order.ApplianceBrand,
		ApplianceModel:     order.ApplianceModel,
		SerialNumber:       order.SerialNumber,
		ProblemDescription: order.ProblemDescription,
		EstimatedCost:      order.EstimatedCost,
		FinalCost:          order.FinalCost,
		CreatedAt:          order.CreatedAt,
		AssignedAt:         order.AssignedAt,
		ScheduledAt:        order.ScheduledAt,
		StartedAt:          order.StartedAt,
		CompletedAt:        order.CompletedAt,
		RepairNotes:        order.RepairNotes,
		PartsUsed:          order.PartsUsed,
	}

	if order.Technician != nil {
		resp.Technician = order.Technician.FullName
	}
	if order.Manager != nil {
		resp.Manager = order.Manager.FullName
	}

	// Временная ссылка на фото техники
	if order.PhotoName != nil && h.MinIOClient != nil {
		if url, err := h.MinIOClient.GetFileURL(*order.PhotoName); err == nil {
			resp.PhotoURL = url
		} else {
			logrus.Error("failed to get photo url: ", err)
		}
	}

	return resp
}

func (h *APIHandler) toOrderResponses(orders []ds.RepairOrder) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = h.toOrderResponse(&orders[i])
	}
	return responses
}

func toUserResponse(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		Enabled:     user.Enabled,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
