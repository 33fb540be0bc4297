package util

import (
	"sync"
	"time"
)

// WaitTimeout waits for wg and reports whether the timeout elapsed first.
func WaitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()
	select {
	case <-done:
		return false
	case <-time.After(timeout):
		return true
	}
}
