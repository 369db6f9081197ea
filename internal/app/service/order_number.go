package service

import (
	"fmt"
	"sync/atomic"
	"time"
)

// OrderNumberGenerator выдаёт номера заявок вида REP-YYYYMMDD-NNNNN.
// Счётчик живёт в рамках одного процесса и при старте засевается от часов
// (миллисекунды эпохи по модулю 100000), чтобы снизить риск коллизий после
// перезапуска. Уникальность гарантируется только внутри процесса, и модуль
// сохраняет пятизначный формат ценой зацикливания последовательности:
// после 100000 заявок за один день в одном процессе номера начнут
// повторяться. Ограничение БД unique на order_number превратит такую
// коллизию в ошибку создания.
type OrderNumberGenerator struct {
	counter int64
}

func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{
		counter: time.Now().UnixMilli() % 100000,
	}
}

// Next возвращает следующий номер заявки
func (g *OrderNumberGenerator) Next() string {
	seq := atomic.AddInt64(&g.counter, 1) % 100000
	return fmt.Sprintf("REP-%s-%05d", time.Now().Format("20060102"), seq)
}
