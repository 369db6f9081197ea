package service

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumberGenerator_Format(t *testing.T) {
	gen := NewOrderNumberGenerator()
	pattern := regexp.MustCompile(`^REP-\d{8}-\d{5}$`)

	number := gen.Next()
	assert.Regexp(t, pattern, number)

	// Дата в номере — сегодняшняя
	assert.Contains(t, number, "REP-"+time.Now().Format("20060102")+"-")
}

func TestOrderNumberGenerator_Monotonic(t *testing.T) {
	gen := NewOrderNumberGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := gen.Next()
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
}

func TestOrderNumberGenerator_FormatSurvivesWrap(t *testing.T) {
	gen := NewOrderNumberGenerator()
	pattern := regexp.MustCompile(`^REP-\d{8}-\d{5}$`)

	// Последовательность зацикливается после 100000 номеров,
	// но пятизначный формат сохраняется
	for i := 0; i < 100001; i++ {
		n := gen.Next()
		if !pattern.MatchString(n) {
			t.Fatalf("malformed order number %q at iteration %d", n, i)
		}
	}
}

func TestOrderNumberGenerator_Concurrent(t *testing.T) {
	gen := NewOrderNumberGenerator()

	const workers = 10
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				n := gen.Next()
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
