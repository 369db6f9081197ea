package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"repairportal/internal/app/middleware"
	"repairportal/internal/app/role"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией.
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	staff := []role.Role{role.Admin, role.Manager, role.Technician, role.Dispatcher}

	// ============ Заявки (Orders) ============
	orders := api.Group("/orders")
	{
		// Просмотр доступен всем сотрудникам
		orders.GET("", authMiddleware.WithAuthCheck(staff...), h.GetOrders)
		orders.GET("/my", authMiddleware.WithAuthCheck(role.Technician), h.GetMyOrders)
		orders.GET("/number/:number", authMiddleware.WithAuthCheck(staff...), h.GetOrderByNumber)
		orders.GET("/:id", authMiddleware.WithAuthCheck(staff...), h.GetOrder)

		// Создание и приём — менеджеры
		orders.POST("", authMiddleware.WithAuthCheck(role.Admin, role.Manager), h.CreateOrder)
		orders.PUT("/:id/accept", authMiddleware.WithAuthCheck(role.Admin, role.Manager), h.AcceptOrder)

		// Назначение — менеджеры и диспетчеры
		orders.PUT("/:id/assign", authMiddleware.WithAuthCheck(role.Admin, role.Manager, role.Dispatcher), h.AssignTechnician)

		// Планирование визита — все сотрудники
		orders.PUT("/:id/schedule", authMiddleware.WithAuthCheck(staff...), h.ScheduleVisit)

		// Выполнение ремонта — техники
		orders.PUT("/:id/start", authMiddleware.WithAuthCheck(role.Admin, role.Technician), h.StartRepair)
		orders.PUT("/:id/complete", authMiddleware.WithAuthCheck(role.Admin, role.Technician), h.CompleteRepair)
		orders.PUT("/:id/waiting-parts", authMiddleware.WithAuthCheck(role.Admin, role.Technician), h.SetWaitingParts)

		// Отмена — менеджеры
		orders.PUT("/:id/cancel", authMiddleware.WithAuthCheck(role.Admin, role.Manager), h.CancelOrder)

		// Фото техники
		orders.POST("/:id/photo", authMiddleware.WithAuthCheck(staff...), h.UploadOrderPhoto)
	}

	// ============ Дашборд ============
	api.GET("/dashboard", authMiddleware.WithAuthCheck(staff...), h.GetDashboard)

	// ============ Администрирование ============
	admin := api.Group("/admin")
	{
		admin.GET("/users", authMiddleware.WithAuthCheck(role.Admin), h.GetUsers)
		admin.POST("/users", authMiddleware.WithAuthCheck(role.Admin), h.CreateUser)
		admin.GET("/users/technicians", authMiddleware.WithAuthCheck(role.Admin, role.Manager, role.Dispatcher), h.GetTechnicians)
		admin.GET("/users/:id", authMiddleware.WithAuthCheck(role.Admin), h.GetUser)
		admin.PUT("/users/:id/toggle", authMiddleware.WithAuthCheck(role.Admin), h.ToggleUser)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/login", h.LoginUser)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(staff...), h.GetUserProfile)
		auth.PUT("/password", authMiddleware.WithAuthCheck(staff...), h.ChangeOwnPassword)
		auth.POST("/logout", authMiddleware.WithAuthCheck(staff...), h.LogoutUser)
	}

	// Swagger документация
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
