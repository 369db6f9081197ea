package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/repository"
	"repairportal/internal/app/role"
)

func setupTestDB(t *testing.T) *repository.Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&ds.User{}, &ds.RepairOrder{})
	require.NoError(t, err)

	return repository.NewWithDB(db)
}

func createTestUser(t *testing.T, repo *repository.Repository, username string, userRole role.Role) *ds.User {
	user := &ds.User{
		Username:  username,
		Password:  "hash",
		FullName:  "Тестовый Пользователь",
		Email:     username + "@repair.local",
		Role:      userRole.String(),
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateUser(user))
	return user
}

func newTestOrder() *ds.RepairOrder {
	return &ds.RepairOrder{
		ClientName:         "Иванова Анна",
		ClientPhone:        "+7 (900) 123-45-67",
		ApplianceType:      "холодильник",
		ApplianceBrand:     "Atlant",
		ProblemDescription: "не морозит",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	t.Run("defaults on creation", func(t *testing.T) {
		order, err := svc.CreateOrder(newTestOrder())
		require.NoError(t, err)

		assert.NotZero(t, order.ID)
		assert.Equal(t, ds.StatusNew, order.Status)
		assert.Equal(t, ds.PriorityNormal, order.Priority)
		assert.False(t, order.CreatedAt.IsZero())
		assert.Regexp(t, regexp.MustCompile(`^REP-\d{8}-\d{5}$`), order.OrderNumber)
	})

	t.Run("explicit priority kept", func(t *testing.T) {
		o := newTestOrder()
		o.Priority = ds.PriorityUrgent
		order, err := svc.CreateOrder(o)
		require.NoError(t, err)
		assert.Equal(t, ds.PriorityUrgent, order.Priority)
	})

	t.Run("order numbers pairwise distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			order, err := svc.CreateOrder(newTestOrder())
			require.NoError(t, err)
			assert.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
			seen[order.OrderNumber] = true
		}
	})
}

func TestOrderService_AcceptOrder(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})
	manager := createTestUser(t, repo, "manager", role.Manager)

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	accepted, err := svc.AcceptOrder(order.ID, manager.ID)
	require.NoError(t, err)

	assert.Equal(t, ds.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ManagerID)
	assert.Equal(t, manager.ID, *accepted.ManagerID)

	// Остальные поля не тронуты
	assert.Equal(t, order.OrderNumber, accepted.OrderNumber)
	assert.Equal(t, order.ClientName, accepted.ClientName)
	assert.Nil(t, accepted.TechnicianID)
	assert.Nil(t, accepted.AssignedAt)

	t.Run("unknown manager", func(t *testing.T) {
		_, err := svc.AcceptOrder(order.ID, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestOrderService_AssignTechnician(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})
	tech := createTestUser(t, repo, "tech1", role.Technician)

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	assigned, err := svc.AssignTechnician(order.ID, tech.ID)
	require.NoError(t, err)

	assert.Equal(t, ds.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.TechnicianID)
	assert.Equal(t, tech.ID, *assigned.TechnicianID)
	require.NotNil(t, assigned.AssignedAt)
	assert.False(t, assigned.AssignedAt.Before(assigned.CreatedAt))

	t.Run("unknown technician", func(t *testing.T) {
		_, err := svc.AssignTechnician(order.ID, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestOrderService_ScheduleVisit(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	visit := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	scheduled, err := svc.ScheduleVisit(order.ID, visit)
	require.NoError(t, err)

	assert.Equal(t, ds.StatusScheduled, scheduled.Status)
	require.NotNil(t, scheduled.ScheduledAt)
	assert.Equal(t, visit.Unix(), scheduled.ScheduledAt.Unix())
}

func TestOrderService_StartRepair(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	started, err := svc.StartRepair(order.ID)
	require.NoError(t, err)

	assert.Equal(t, ds.StatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)
}

func TestOrderService_CompleteRepair(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	completed, err := svc.CompleteRepair(order.ID, "заменён компрессор", "компрессор, хладагент", 5000)
	require.NoError(t, err)

	assert.Equal(t, ds.StatusCompleted, completed.Status)
	assert.Equal(t, "заменён компрессор", completed.RepairNotes)
	assert.Equal(t, "компрессор, хладагент", completed.PartsUsed)
	require.NotNil(t, completed.FinalCost)
	assert.Equal(t, float64(5000), *completed.FinalCost)
	assert.NotNil(t, completed.CompletedAt)
}

func TestOrderService_SetWaitingParts(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	waiting, err := svc.SetWaitingParts(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusWaitingParts, waiting.Status)
}

func TestOrderService_CancelOrder(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	// Отмена срабатывает из любого статуса
	for _, prepare := range []func(id uint){
		func(id uint) {},
		func(id uint) { _, _ = svc.StartRepair(id) },
		func(id uint) { _, _ = svc.SetWaitingParts(id) },
	} {
		order, err := svc.CreateOrder(newTestOrder())
		require.NoError(t, err)
		prepare(order.ID)

		cancelled, err := svc.CancelOrder(order.ID)
		require.NoError(t, err)
		assert.Equal(t, ds.StatusCancelled, cancelled.Status)
	}
}

func TestOrderService_UnguardedTransitions(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})

	// С разрешающей политикой переход возможен из любого статуса
	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	started, err := svc.StartRepair(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusInProgress, started.Status)
}

func TestOrderService_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})
	tech := createTestUser(t, repo, "tech1", role.Technician)

	_, err := svc.FindByID(404)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.FindByOrderNumber("REP-20260101-00001")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.AcceptOrder(404, tech.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.AssignTechnician(404, tech.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.ScheduleVisit(404, time.Now())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.StartRepair(404)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.CompleteRepair(404, "n", "p", 100)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.SetWaitingParts(404)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.CancelOrder(404)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Ничего не записано
	orders, total, err := svc.FindAll("", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
}

func TestOrderService_Queries(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, AnyTransitionPolicy{})
	tech := createTestUser(t, repo, "tech1", role.Technician)

	first, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)
	second, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	_, err = svc.AssignTechnician(second.ID, tech.ID)
	require.NoError(t, err)

	t.Run("find by number", func(t *testing.T) {
		found, err := svc.FindByOrderNumber(first.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
	})

	t.Run("count by status", func(t *testing.T) {
		newCount, err := svc.CountByStatus(ds.StatusNew)
		require.NoError(t, err)
		assert.Equal(t, int64(1), newCount)

		assignedCount, err := svc.CountByStatus(ds.StatusAssigned)
		require.NoError(t, err)
		assert.Equal(t, int64(1), assignedCount)
	})

	t.Run("active orders for technician", func(t *testing.T) {
		active, err := svc.FindActiveOrdersForTechnician(tech.ID)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, second.ID, active[0].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		orders, total, err := svc.FindAll(ds.StatusNew, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})
}
