package auth

import (
	"sync"
	"time"
)

// RateLimiter - процессный fixed-window лимитер. Состояние живет в памяти
// одного инстанса и сбрасывается при рестарте: это best-effort защита,
// не распределенная.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	stop    chan struct{}
}

type rateEntry struct {
	count     int
	windowEnd time.Time
}

const sweepInterval = 60 * time.Second

func NewRateLimiter() *RateLimiter {
	l := &RateLimiter{
		entries: make(map[string]*rateEntry),
		stop:    make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow инкрементирует счетчик ключа и отвечает, уложился ли вызов в limit
// за текущее окно. Окно фиксированное: по истечении счетчик начинается заново.
func (l *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		l.entries[key] = &rateEntry{count: 1, windowEnd: now.Add(window)}
		return limit >= 1
	}

	e.count++
	return e.count <= limit
}

// Stop останавливает фоновую чистку (нужно в тестах)
func (l *RateLimiter) Stop() {
	close(l.stop)
}

func (l *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now())
		case <-l.stop:
			return
		}
	}
}

func (l *RateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, key)
		}
	}
}
