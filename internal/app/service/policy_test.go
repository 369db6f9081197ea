package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairportal/internal/app/ds"
)

func TestAnyTransitionPolicy(t *testing.T) {
	policy := AnyTransitionPolicy{}

	// Разрешающая политика пропускает всё, включая переходы из терминальных статусов
	assert.NoError(t, policy.Check(ds.StatusNew, ds.StatusCompleted))
	assert.NoError(t, policy.Check(ds.StatusCompleted, ds.StatusInProgress))
	assert.NoError(t, policy.Check(ds.StatusCancelled, ds.StatusNew))
}

func TestStrictTransitionPolicy(t *testing.T) {
	policy := StrictTransitionPolicy{}

	t.Run("happy path chain", func(t *testing.T) {
		chain := []string{
			ds.StatusNew,
			ds.StatusAccepted,
			ds.StatusAssigned,
			ds.StatusScheduled,
			ds.StatusInProgress,
			ds.StatusCompleted,
		}
		for i := 0; i < len(chain)-1; i++ {
			assert.NoError(t, policy.Check(chain[i], chain[i+1]), "%s -> %s", chain[i], chain[i+1])
		}
	})

	t.Run("waiting parts round trip", func(t *testing.T) {
		assert.NoError(t, policy.Check(ds.StatusInProgress, ds.StatusWaitingParts))
		assert.NoError(t, policy.Check(ds.StatusWaitingParts, ds.StatusInProgress))
	})

	t.Run("cancel from non-terminal", func(t *testing.T) {
		for _, from := range []string{
			ds.StatusNew, ds.StatusAccepted, ds.StatusAssigned,
			ds.StatusScheduled, ds.StatusInProgress, ds.StatusWaitingParts,
		} {
			assert.NoError(t, policy.Check(from, ds.StatusCancelled), "cancel from %s", from)
		}
	})

	t.Run("invalid transitions rejected", func(t *testing.T) {
		cases := []struct{ from, to string }{
			{ds.StatusNew, ds.StatusInProgress},
			{ds.StatusNew, ds.StatusCompleted},
			{ds.StatusAccepted, ds.StatusScheduled},
			{ds.StatusCompleted, ds.StatusInProgress},
			{ds.StatusCancelled, ds.StatusAccepted},
			{ds.StatusCompleted, ds.StatusCancelled},
			{ds.StatusCancelled, ds.StatusCancelled},
		}
		for _, c := range cases {
			err := policy.Check(c.from, c.to)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", c.from, c.to)
		}
	})
}

func TestOrderService_StrictPolicy(t *testing.T) {
	repo := setupTestDB(t)
	svc := NewOrderService(repo, StrictTransitionPolicy{})

	order, err := svc.CreateOrder(newTestOrder())
	require.NoError(t, err)

	// NEW -> IN_PROGRESS запрещён строгой политикой
	_, err = svc.StartRepair(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Заявка не изменилась
	unchanged, err := svc.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusNew, unchanged.Status)
	assert.Nil(t, unchanged.StartedAt)
}
