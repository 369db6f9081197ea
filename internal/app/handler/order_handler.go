package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/dto"
)

// ============ ДОМЕН ЗАЯВКИ ============

func parseOrderID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetOrders получает список заявок
// @Summary Список заявок
// @Description Возвращает страницу заявок (новые сверху) с фильтром по статусу
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param page query int false "Номер страницы (с 1)"
// @Param size query int false "Размер страницы"
// @Success 200 {object} dto.OrderListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	orders, total, err := h.OrderService.FindAll(status, page, size)
	if err != nil {
		logrus.Error("Error getting orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения заявок")
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: h.toOrderResponses(orders),
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetOrder получает одну заявку
// @Summary Заявка по ID
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	order, err := h.OrderService.FindByID(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// GetOrderByNumber получает заявку по номеру
// @Summary Заявка по номеру
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param number path string true "Номер заявки REP-YYYYMMDD-NNNNN"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/number/{number} [get]
func (h *APIHandler) GetOrderByNumber(c *gin.Context) {
	number := c.Param("number")

	order, err := h.OrderService.FindByOrderNumber(number)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// GetMyOrders получает активные заявки текущего техника
// @Summary Мои активные заявки
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/orders/my [get]
func (h *APIHandler) GetMyOrders(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	orders, err := h.OrderService.FindActiveOrdersForTechnician(userID)
	if err != nil {
		logrus.Error("Error getting technician orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения заявок")
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: h.toOrderResponses(orders),
		Total:  int64(len(orders)),
		Page:   1,
		Size:   len(orders),
	})
}

// CreateOrder создает новую заявку
// @Summary Создание заявки
// @Description Создает заявку в статусе NEW с новым номером
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Данные заявки"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/orders [post]
func (h *APIHandler) CreateOrder(c *gin.Context) {
	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order := &ds.RepairOrder{
		ClientName:         request.ClientName,
		ClientPhone:        request.ClientPhone,
		ClientEmail:        request.ClientEmail,
		ClientAddress:      request.ClientAddress,
		ApplianceType:      request.ApplianceType,
		ApplianceBrand:     request.ApplianceBrand,
		ApplianceModel:     request.ApplianceModel,
		SerialNumber:       request.SerialNumber,
		ProblemDescription: request.ProblemDescription,
		Priority:           request.Priority,
		EstimatedCost:      request.EstimatedCost,
	}

	order, err := h.OrderService.CreateOrder(order)
	if err != nil {
		logrus.Error("Error creating order: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка создания заявки")
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusCreated, resp)
}

// ============ Переходы жизненного цикла ============

// AcceptOrder менеджер принимает заявку
// @Summary Принять заявку
// @Description Переводит заявку в ACCEPTED, менеджером становится текущий пользователь
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/accept [put]
func (h *APIHandler) AcceptOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	order, err := h.OrderService.AcceptOrder(id, userID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// AssignTechnician назначает техника
// @Summary Назначить техника
// @Description Переводит заявку в ASSIGNED и ставит assignedAt
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.AssignTechnicianRequest true "ID техника"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/assign [put]
func (h *APIHandler) AssignTechnician(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	var request dto.AssignTechnicianRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.OrderService.AssignTechnician(id, request.TechnicianID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// ScheduleVisit планирует визит техника
// @Summary Запланировать визит
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.ScheduleVisitRequest true "Дата визита"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/schedule [put]
func (h *APIHandler) ScheduleVisit(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	var request dto.ScheduleVisitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.OrderService.ScheduleVisit(id, request.ScheduledAt)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// StartRepair начинает ремонт
// @Summary Начать ремонт
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/start [put]
func (h *APIHandler) StartRepair(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	order, err := h.OrderService.StartRepair(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// CompleteRepair завершает ремонт
// @Summary Завершить ремонт
// @Description Переводит заявку в COMPLETED с отчётом и итоговой стоимостью
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.CompleteRepairRequest true "Результат ремонта"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/complete [put]
func (h *APIHandler) CompleteRepair(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	var request dto.CompleteRepairRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.OrderService.CompleteRepair(id, request.RepairNotes, request.PartsUsed, request.FinalCost)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// SetWaitingParts переводит заявку в ожидание запчастей
// @Summary Ожидание запчастей
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/waiting-parts [put]
func (h *APIHandler) SetWaitingParts(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	order, err := h.OrderService.SetWaitingParts(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// CancelOrder отменяет заявку
// @Summary Отменить заявку
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/cancel [put]
func (h *APIHandler) CancelOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	order, err := h.OrderService.CancelOrder(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}

// ============ Фото техники ============

// UploadOrderPhoto загружает фото техники в MinIO
// @Summary Загрузка фото техники
// @Tags Orders
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param photo formData file true "Фото техники"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/photo [post]
func (h *APIHandler) UploadOrderPhoto(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return
	}

	// Заявка должна существовать до загрузки файла
	order, err := h.OrderService.FindByID(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "файл не найден в запросе")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка чтения файла")
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка чтения файла")
		return
	}

	// Удаляем старое фото, если было
	if order.PhotoName != nil {
		if err := h.MinIOClient.DeleteFile(*order.PhotoName); err != nil {
			logrus.Error("failed to delete old photo: ", err)
		}
	}

	photoName, err := h.MinIOClient.UploadOrderPhoto(order.ID, fileData, fileHeader.Filename)
	if err != nil {
		logrus.Error("Error uploading photo: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка загрузки фото")
		return
	}

	order, err = h.OrderService.AttachPhoto(order.ID, photoName)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := h.toOrderResponse(order)
	c.JSON(http.StatusOK, resp)
}
