package repository

import (
	"repairportal/internal/app/ds"
)

// Методы для работы с заявками на ремонт

// CreateOrder вставляет новую заявку (id присваивается базой)
func (r *Repository) CreateOrder(order *ds.RepairOrder) error {
	return r.db.Create(order).Error
}

// SaveOrder сохраняет изменения существующей заявки
func (r *Repository) SaveOrder(order *ds.RepairOrder) error {
	return r.db.Save(order).Error
}

// GetOrderByID возвращает заявку по ID вместе с техником и менеджером
func (r *Repository) GetOrderByID(orderID uint) (*ds.RepairOrder, error) {
	var order ds.RepairOrder
	err := r.db.Preload("Technician").Preload("Manager").First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumber возвращает заявку по номеру вида REP-YYYYMMDD-NNNNN
func (r *Repository) GetOrderByNumber(orderNumber string) (*ds.RepairOrder, error) {
	var order ds.RepairOrder
	err := r.db.Preload("Technician").Preload("Manager").
		Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders возвращает страницу заявок (новые сверху) с опциональным фильтром по статусу
func (r *Repository) GetOrders(status string, page, size int) ([]ds.RepairOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	query := r.db.Model(&ds.RepairOrder{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []ds.RepairOrder
	err := query.Preload("Technician").Preload("Manager").
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetOrdersByStatus возвращает все заявки в одном статусе
func (r *Repository) GetOrdersByStatus(status string) ([]ds.RepairOrder, error) {
	var orders []ds.RepairOrder
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrdersByStatuses возвращает заявки из набора статусов
func (r *Repository) GetOrdersByStatuses(statuses []string) ([]ds.RepairOrder, error) {
	var orders []ds.RepairOrder
	err := r.db.Where("status IN ?", statuses).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrdersByTechnician возвращает страницу заявок техника
func (r *Repository) GetOrdersByTechnician(technicianID uint, page, size int) ([]ds.RepairOrder, int64, error) {
	return r.pagedByColumn("technician_id", technicianID, page, size)
}

// GetOrdersByManager возвращает страницу заявок менеджера
func (r *Repository) GetOrdersByManager(managerID uint, page, size int) ([]ds.RepairOrder, int64, error) {
	return r.pagedByColumn("manager_id", managerID, page, size)
}

func (r *Repository) pagedByColumn(column string, userID uint, page, size int) ([]ds.RepairOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	query := r.db.Model(&ds.RepairOrder{}).Where(column+" = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []ds.RepairOrder
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetActiveOrdersForTechnician возвращает незавершённые заявки техника
func (r *Repository) GetActiveOrdersForTechnician(technicianID uint) ([]ds.RepairOrder, error) {
	var orders []ds.RepairOrder
	err := r.db.Where("technician_id = ? AND status IN ?", technicianID, ds.ActiveStatuses).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// CountOrdersByStatus считает заявки в статусе
func (r *Repository) CountOrdersByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&ds.RepairOrder{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountOrdersByTechnicianAndStatus считает заявки техника в статусе
func (r *Repository) CountOrdersByTechnicianAndStatus(technicianID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&ds.RepairOrder{}).
		Where("technician_id = ? AND status = ?", technicianID, status).
		Count(&count).Error
	return count, err
}
