// Package loop drives a frame callback at a fixed rate for frontends that do
// not bring their own frame scheduling.
package loop

import (
	"context"
	"sync"
	"time"
)

// Frame runs one frame. Returning false ends the loop.
type Frame func() bool

// Scheduler calls a Frame on a fixed interval from a single goroutine.
type Scheduler struct {
	interval time.Duration
	frame    Frame

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewScheduler(interval time.Duration, frame Frame) *Scheduler {
	return &Scheduler{interval: interval, frame: frame}
}

// Run blocks, calling the frame until it returns false, Stop is called or ctx
// is done. Only one Run may be active at a time; a second call returns at once.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return nil
		default:
		}
		if !s.frame() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Stop ends a running loop and waits until the frame in flight, if any, has
// returned. After Stop returns the frame is not called again.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stop, done := s.stopChan, s.done
	select {
	case <-stop:
	default:
		close(stop)
	}
	s.mu.Unlock()
	<-done
}
