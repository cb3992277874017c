package acquisition

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler invokes fn every interval until the returned stop func is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// TickerScheduler runs a time.Ticker on its own goroutine and hands every
// tick to Post, which must run the callback on the UI thread (fyne.Do).
// A nil Post calls fn on the ticker goroutine. While a posted tick has not
// run yet, further ticks are dropped, so a slow UI thread never builds a
// backlog.
type TickerScheduler struct {
	Post func(func())
}

func (s TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var pending atomic.Bool
	run := func() {
		defer pending.Store(false)
		fn()
	}
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if s.Post == nil {
					fn()
					continue
				}
				if pending.CompareAndSwap(false, true) {
					s.Post(run)
				}
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
