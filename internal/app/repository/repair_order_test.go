package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"repairportal/internal/app/ds"
)

func setupTestRepo(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&ds.User{}, &ds.RepairOrder{})
	require.NoError(t, err)

	return NewWithDB(db)
}

func seedOrder(t *testing.T, repo *Repository, i int, status string, createdAt time.Time) *ds.RepairOrder {
	order := &ds.RepairOrder{
		OrderNumber:        fmt.Sprintf("REP-20260831-%05d", i),
		ClientName:         "Клиент",
		ClientPhone:        "+7 (900) 000-00-00",
		ApplianceType:      "стиральная машина",
		ProblemDescription: "не сливает воду",
		Status:             status,
		Priority:           ds.PriorityNormal,
		CreatedAt:          createdAt,
	}
	require.NoError(t, repo.CreateOrder(order))
	return order
}

func TestRepository_GetOrders(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 15; i++ {
		status := ds.StatusNew
		if i%3 == 0 {
			status = ds.StatusCompleted
		}
		seedOrder(t, repo, i, status, base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("first page newest first", func(t *testing.T) {
		orders, total, err := repo.GetOrders("", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, orders, 10)
		assert.Equal(t, "REP-20260831-00015", orders[0].OrderNumber)
		for i := 1; i < len(orders); i++ {
			assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
		}
	})

	t.Run("second page remainder", func(t *testing.T) {
		orders, total, err := repo.GetOrders("", 2, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, orders, 5)
	})

	t.Run("status filter", func(t *testing.T) {
		orders, total, err := repo.GetOrders(ds.StatusCompleted, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, o := range orders {
			assert.Equal(t, ds.StatusCompleted, o.Status)
		}
	})

	t.Run("out of range params fall back to defaults", func(t *testing.T) {
		orders, _, err := repo.GetOrders("", 0, -5)
		require.NoError(t, err)
		assert.Len(t, orders, 10)
	})
}

func TestRepository_GetOrderByNumber(t *testing.T) {
	repo := setupTestRepo(t)
	seeded := seedOrder(t, repo, 1, ds.StatusNew, time.Now())

	found, err := repo.GetOrderByNumber(seeded.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.GetOrderByNumber("REP-20260831-99999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_TechnicianQueries(t *testing.T) {
	repo := setupTestRepo(t)

	tech := &ds.User{
		Username:  "tech1",
		Password:  "hash",
		FullName:  "Петров Пётр",
		Email:     "tech1@repair.local",
		Role:      "TECHNICIAN",
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateUser(tech))

	base := time.Now().Add(-time.Hour)
	inProgress := seedOrder(t, repo, 1, ds.StatusInProgress, base)
	waiting := seedOrder(t, repo, 2, ds.StatusWaitingParts, base.Add(time.Minute))
	done := seedOrder(t, repo, 3, ds.StatusCompleted, base.Add(2*time.Minute))
	seedOrder(t, repo, 4, ds.StatusNew, base.Add(3*time.Minute))

	for _, o := range []*ds.RepairOrder{inProgress, waiting, done} {
		o.TechnicianID = &tech.ID
		require.NoError(t, repo.SaveOrder(o))
	}

	t.Run("active orders exclude terminal", func(t *testing.T) {
		active, err := repo.GetActiveOrdersForTechnician(tech.ID)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, waiting.ID, active[0].ID)
		assert.Equal(t, inProgress.ID, active[1].ID)
	})

	t.Run("paged by technician", func(t *testing.T) {
		orders, total, err := repo.GetOrdersByTechnician(tech.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, orders, 3)
	})

	t.Run("count by technician and status", func(t *testing.T) {
		count, err := repo.CountOrdersByTechnicianAndStatus(tech.ID, ds.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestRepository_Counts(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now()
	seedOrder(t, repo, 1, ds.StatusNew, base)
	seedOrder(t, repo, 2, ds.StatusNew, base)
	seedOrder(t, repo, 3, ds.StatusCancelled, base)

	count, err := repo.CountOrdersByStatus(ds.StatusNew)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountOrdersByStatus(ds.StatusInProgress)
	require.NoError(t, err)
	assert.Zero(t, count)

	t.Run("orders by statuses", func(t *testing.T) {
		orders, err := repo.GetOrdersByStatuses([]string{ds.StatusNew, ds.StatusCancelled})
		require.NoError(t, err)
		assert.Len(t, orders, 3)
	})
}

func TestRepository_UserUniqueness(t *testing.T) {
	repo := setupTestRepo(t)

	user := &ds.User{
		Username:  "admin",
		Password:  "hash",
		FullName:  "Администратор",
		Email:     "admin@repair.local",
		Role:      "ADMIN",
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateUser(user))

	exists, err := repo.UserExistsByUsername("admin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserExistsByUsername("ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.UserExistsByEmail("admin@repair.local")
	require.NoError(t, err)
	assert.True(t, exists)
}
