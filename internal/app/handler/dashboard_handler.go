package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/dto"
	"repairportal/internal/app/role"
)

// GetDashboard сводка по заявкам для текущего пользователя
// @Summary Дашборд
// @Description Счётчики по статусам; технику — его активные заявки, менеджеру — новые
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/dashboard [get]
func (h *APIHandler) GetDashboard(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	resp := dto.DashboardResponse{}

	if resp.NewOrdersCount, err = h.OrderService.CountByStatus(ds.StatusNew); err != nil {
		logrus.Error("Error counting new orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения статистики")
		return
	}
	if resp.InProgressCount, err = h.OrderService.CountByStatus(ds.StatusInProgress); err != nil {
		logrus.Error("Error counting in-progress orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения статистики")
		return
	}
	if resp.CompletedCount, err = h.OrderService.CountByStatus(ds.StatusCompleted); err != nil {
		logrus.Error("Error counting completed orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения статистики")
		return
	}

	// Для техника показываем его активные заявки
	if userRole == role.Technician {
		myOrders, err := h.OrderService.FindActiveOrdersForTechnician(userID)
		if err != nil {
			logrus.Error("Error getting technician orders: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "ошибка получения заявок")
			return
		}
		resp.MyOrders = h.toOrderResponses(myOrders)
	}

	// Для менеджера показываем новые заявки
	if userRole == role.Manager || userRole == role.Admin {
		newOrders, err := h.OrderService.FindNewOrders()
		if err != nil {
			logrus.Error("Error getting new orders: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "ошибка получения заявок")
			return
		}
		resp.NewOrders = h.toOrderResponses(newOrders)
	}

	c.JSON(http.StatusOK, resp)
}
