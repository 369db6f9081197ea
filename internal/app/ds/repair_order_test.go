package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairOrder_IsTerminal(t *testing.T) {
	for _, status := range []string{
		StatusNew, StatusAccepted, StatusAssigned,
		StatusScheduled, StatusInProgress, StatusWaitingParts,
	} {
		order := RepairOrder{Status: status}
		assert.False(t, order.IsTerminal(), status)
	}

	for _, status := range []string{StatusCompleted, StatusCancelled} {
		order := RepairOrder{Status: status}
		assert.True(t, order.IsTerminal(), status)
	}
}
