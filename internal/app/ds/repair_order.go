package ds

import "time"

// Статусы заявки на ремонт
const (
	StatusNew          = "NEW"           // Новая заявка
	StatusAccepted     = "ACCEPTED"      // Принята менеджером
	StatusAssigned     = "ASSIGNED"      // Назначен техник
	StatusScheduled    = "SCHEDULED"     // Запланирован визит
	StatusInProgress   = "IN_PROGRESS"   // В работе
	StatusWaitingParts = "WAITING_PARTS" // Ожидание запчастей
	StatusCompleted    = "COMPLETED"     // Завершена
	StatusCancelled    = "CANCELLED"     // Отменена
)

// Приоритеты заявки
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ActiveStatuses — статусы, в которых заявка числится в работе у техника
var ActiveStatuses = []string{StatusAssigned, StatusScheduled, StatusInProgress, StatusWaitingParts}

// Таблица заявок на ремонт бытовой техники
type RepairOrder struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"type:varchar(30);unique;not null"` // REP-YYYYMMDD-NNNNN

	// Информация о клиенте
	ClientName    string `gorm:"type:varchar(100);not null"`
	ClientPhone   string `gorm:"type:varchar(30);not null"`
	ClientEmail   string `gorm:"type:varchar(100)"`
	ClientAddress string `gorm:"type:varchar(255)"`

	// Информация о технике
	ApplianceType  string `gorm:"type:varchar(50);not null"` // холодильник, стиральная машина и т.д.
	ApplianceBrand string `gorm:"type:varchar(50)"`
	ApplianceModel string `gorm:"type:varchar(50)"`
	SerialNumber   string `gorm:"type:varchar(50)"`

	// Описание проблемы
	ProblemDescription string `gorm:"type:varchar(2000)"`

	Status   string `gorm:"type:varchar(20);not null"`
	Priority string `gorm:"type:varchar(20);not null;default:'NORMAL'"`

	// Назначенный техник и принявший менеджер (слабые ссылки)
	TechnicianID *uint `gorm:"default:null"`
	ManagerID    *uint `gorm:"default:null"`

	// Финансовая информация
	EstimatedCost *float64 `gorm:"type:decimal(12,2)"` // Предварительная стоимость
	FinalCost     *float64 `gorm:"type:decimal(12,2)"` // Итоговая стоимость

	// Даты: каждая выставляется один раз соответствующим переходом
	CreatedAt   time.Time  `gorm:"not null"`
	AssignedAt  *time.Time `gorm:"default:null"`
	ScheduledAt *time.Time `gorm:"default:null"` // Запланированная дата визита
	StartedAt   *time.Time `gorm:"default:null"` // Начало ремонта
	CompletedAt *time.Time `gorm:"default:null"` // Завершение ремонта

	// Результат ремонта
	RepairNotes string `gorm:"type:varchar(2000)"`
	PartsUsed   string `gorm:"type:varchar(1000)"` // Использованные запчасти

	// Фото техники в MinIO
	PhotoName *string `gorm:"type:varchar(255)"`

	Technician *User `gorm:"foreignKey:TechnicianID"`
	Manager    *User `gorm:"foreignKey:ManagerID"`
}

// IsTerminal сообщает, что заявка в конечном статусе
func (o *RepairOrder) IsTerminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}
