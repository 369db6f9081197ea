package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/repository"
)

// OrderService — движок жизненного цикла заявок на ремонт.
// Каждый переход выполняется как одно чтение-изменение-запись одной заявки;
// состояния между вызовами сервис не хранит.
type OrderService struct {
	repo    *repository.Repository
	policy  TransitionPolicy
	numbers *OrderNumberGenerator
}

func NewOrderService(repo *repository.Repository, policy TransitionPolicy) *OrderService {
	return &OrderService{
		repo:    repo,
		policy:  policy,
		numbers: NewOrderNumberGenerator(),
	}
}

// CreateOrder создаёт заявку: номер, статус NEW, приоритет NORMAL по умолчанию
// и createdAt выставляются здесь, до первой записи в хранилище
func (s *OrderService) CreateOrder(order *ds.RepairOrder) (*ds.RepairOrder, error) {
	order.OrderNumber = s.numbers.Next()
	order.Status = ds.StatusNew
	if order.Priority == "" {
		order.Priority = ds.PriorityNormal
	}
	order.CreatedAt = time.Now()

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// loadForTransition загружает заявку и проверяет переход по политике
func (s *OrderService) loadForTransition(orderID uint, next string) (*ds.RepairOrder, error) {
	order, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := s.policy.Check(order.Status, next); err != nil {
		return nil, err
	}
	return order, nil
}

// AcceptOrder — менеджер принимает заявку
func (s *OrderService) AcceptOrder(orderID, managerID uint) (*ds.RepairOrder, error) {
	manager, err := s.repo.GetUserByID(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	order, err := s.loadForTransition(orderID, ds.StatusAccepted)
	if err != nil {
		return nil, err
	}

	order.Status = ds.StatusAccepted
	order.ManagerID = &manager.ID
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AssignTechnician назначает техника на заявку.
// Роль назначаемого пользователя здесь не проверяется — фильтрация
// кандидатов по роли и активности лежит на вызывающей стороне.
func (s *OrderService) AssignTechnician(orderID, technicianID uint) (*ds.RepairOrder, error) {
	technician, err := s.repo.GetUserByID(technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	order, err := s.loadForTransition(orderID, ds.StatusAssigned)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = ds.StatusAssigned
	order.TechnicianID = &technician.ID
	order.AssignedAt = &now
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ScheduleVisit планирует визит техника
func (s *OrderService) ScheduleVisit(orderID uint, scheduledAt time.Time) (*ds.RepairOrder, error) {
	order, err := s.loadForTransition(orderID, ds.StatusScheduled)
	if err != nil {
		return nil, err
	}

	order.Status = ds.StatusScheduled
	order.ScheduledAt = &scheduledAt
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// StartRepair — техник начинает ремонт
func (s *OrderService) StartRepair(orderID uint) (*ds.RepairOrder, error) {
	order, err := s.loadForTransition(orderID, ds.StatusInProgress)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = ds.StatusInProgress
	order.StartedAt = &now
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteRepair завершает ремонт с итоговой стоимостью и отчётом
func (s *OrderService) CompleteRepair(orderID uint, repairNotes, partsUsed string, finalCost float64) (*ds.RepairOrder, error) {
	order, err := s.loadForTransition(orderID, ds.StatusCompleted)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = ds.StatusCompleted
	order.CompletedAt = &now
	order.RepairNotes = repairNotes
	order.PartsUsed = partsUsed
	order.FinalCost = &finalCost
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetWaitingParts переводит заявку в ожидание запчастей
func (s *OrderService) SetWaitingParts(orderID uint) (*ds.RepairOrder, error) {
	order, err := s.loadForTransition(orderID, ds.StatusWaitingParts)
	if err != nil {
		return nil, err
	}

	order.Status = ds.StatusWaitingParts
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder отменяет заявку
func (s *OrderService) CancelOrder(orderID uint) (*ds.RepairOrder, error) {
	order, err := s.loadForTransition(orderID, ds.StatusCancelled)
	if err != nil {
		return nil, err
	}

	order.Status = ds.StatusCancelled
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AttachPhoto сохраняет имя загруженного фото техники
func (s *OrderService) AttachPhoto(orderID uint, photoName string) (*ds.RepairOrder, error) {
	order, err := s.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	order.PhotoName = &photoName
	if err := s.repo.SaveOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ============ Запросы ============

func (s *OrderService) FindByID(orderID uint) (*ds.RepairOrder, error) {
	order, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) FindByOrderNumber(orderNumber string) (*ds.RepairOrder, error) {
	order, err := s.repo.GetOrderByNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// FindAll возвращает страницу заявок, новые сверху
func (s *OrderService) FindAll(status string, page, size int) ([]ds.RepairOrder, int64, error) {
	return s.repo.GetOrders(status, page, size)
}

func (s *OrderService) FindByStatus(status string) ([]ds.RepairOrder, error) {
	return s.repo.GetOrdersByStatus(status)
}

func (s *OrderService) FindByTechnician(technicianID uint, page, size int) ([]ds.RepairOrder, int64, error) {
	return s.repo.GetOrdersByTechnician(technicianID, page, size)
}

func (s *OrderService) FindByManager(managerID uint, page, size int) ([]ds.RepairOrder, int64, error) {
	return s.repo.GetOrdersByManager(managerID, page, size)
}

// FindNewOrders — новые заявки для менеджера
func (s *OrderService) FindNewOrders() ([]ds.RepairOrder, error) {
	return s.repo.GetOrdersByStatus(ds.StatusNew)
}

// FindActiveOrdersForTechnician — заявки техника в работе
func (s *OrderService) FindActiveOrdersForTechnician(technicianID uint) ([]ds.RepairOrder, error) {
	return s.repo.GetActiveOrdersForTechnician(technicianID)
}

// Статистика

func (s *OrderService) CountByStatus(status string) (int64, error) {
	return s.repo.CountOrdersByStatus(status)
}

func (s *OrderService) CountActiveOrdersForTechnician(technicianID uint) (int64, error) {
	return s.repo.CountOrdersByTechnicianAndStatus(technicianID, ds.StatusInProgress)
}
