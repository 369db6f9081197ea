package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Заявки на ремонт (Repair Orders) ============

type CreateOrderRequest struct {
	ClientName    string `json:"client_name" binding:"required,max=100"`
	ClientPhone   string `json:"client_phone" binding:"required,max=30"`
	ClientEmail   string `json:"client_email" binding:"omitempty,email"`
	ClientAddress string `json:"client_address" binding:"max=255"`

	ApplianceType  string `json:"appliance_type" binding:"required,max=50"`
	ApplianceBrand string `json:"appliance_brand" binding:"max=50"`
	ApplianceModel string `json:"appliance_model" binding:"max=50"`
	SerialNumber   string `json:"serial_number" binding:"max=50"`

	ProblemDescription string   `json:"problem_description" binding:"max=2000"`
	Priority           string   `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	EstimatedCost      *float64 `json:"estimated_cost" binding:"omitempty,gte=0"`
}

type AssignTechnicianRequest struct {
	TechnicianID uint `json:"technician_id" binding:"required"`
}

type ScheduleVisitRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type CompleteRepairRequest struct {
	RepairNotes string  `json:"repair_notes" binding:"required,max=2000"`
	PartsUsed   string  `json:"parts_used" binding:"max=1000"`
	FinalCost   float64 `json:"final_cost" binding:"required,gte=0"`
}

type OrderResponse struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`

	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`

	ApplianceType  string `json:"appliance_type"`
	ApplianceBrand string `json:"appliance_brand,omitempty"`
	ApplianceModel string `json:"appliance_model,omitempty"`
	SerialNumber   string `json:"serial_number,omitempty"`

	ProblemDescription string `json:"problem_description,omitempty"`

	Technician string `json:"technician,omitempty"` // ФИО техника
	Manager    string `json:"manager,omitempty"`    // ФИО менеджера

	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	FinalCost     *float64 `json:"final_cost,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	RepairNotes string `json:"repair_notes,omitempty"`
	PartsUsed   string `json:"parts_used,omitempty"`

	PhotoURL string `json:"photo_url,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

// ============ Дашборд ============

type DashboardResponse struct {
	NewOrdersCount  int64           `json:"new_orders_count"`
	InProgressCount int64           `json:"in_progress_count"`
	CompletedCount  int64           `json:"completed_count"`
	MyOrders        []OrderResponse `json:"my_orders,omitempty"`   // активные заявки техника
	NewOrders       []OrderResponse `json:"new_orders,omitempty"`  // новые заявки для менеджера
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Enabled     bool       `json:"enabled"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"max=30"`
	Role     string `json:"role" binding:"required,oneof=ADMIN MANAGER TECHNICIAN DISPATCHER"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
