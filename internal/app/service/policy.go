package service

import (
	"fmt"

	"repairportal/internal/app/ds"
)

// TransitionPolicy решает, допустим ли перевод заявки из текущего статуса в новый.
// Движок жизненного цикла вызывает Check перед каждым переходом и не делает
// никаких собственных проверок статуса.
type TransitionPolicy interface {
	Check(current, next string) error
}

// AnyTransitionPolicy разрешает любой переход из любого статуса.
// Корректность последовательности обеспечивается только интерфейсом
// вызывающей стороны.
type AnyTransitionPolicy struct{}

func (AnyTransitionPolicy) Check(current, next string) error {
	return nil
}

// StrictTransitionPolicy допускает переход только из ожидаемых статусов:
//
//	NEW -> ACCEPTED -> ASSIGNED -> SCHEDULED -> IN_PROGRESS -> COMPLETED
//	IN_PROGRESS <-> WAITING_PARTS
//	любой неконечный статус -> CANCELLED
type StrictTransitionPolicy struct{}

var allowedFrom = map[string][]string{
	ds.StatusAccepted:     {ds.StatusNew},
	ds.StatusAssigned:     {ds.StatusAccepted},
	ds.StatusScheduled:    {ds.StatusAssigned},
	ds.StatusInProgress:   {ds.StatusScheduled, ds.StatusWaitingParts},
	ds.StatusWaitingParts: {ds.StatusInProgress},
	ds.StatusCompleted:    {ds.StatusInProgress},
}

func (StrictTransitionPolicy) Check(current, next string) error {
	if next == ds.StatusCancelled {
		order := ds.RepairOrder{Status: current}
		if order.IsTerminal() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
		}
		return nil
	}

	for _, from := range allowedFrom[next] {
		if current == from {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
}
