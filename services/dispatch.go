package services

import (
	log "github.com/sirupsen/logrus"
)

// Dispatcher hands a vehicle id to the scheduler without blocking the
// caller. Route flows enqueue and return; a failed recompute only shows
// up in the logs and is retried by whatever trigger comes next.
type Dispatcher interface {
	Enqueue(vehicleID int)
}

// AsyncDispatcher runs recomputes on a single background worker fed by a
// buffered channel. A full queue drops the request with a warning rather
// than stalling an HTTP handler; the hourly sweep picks the vehicle up
// again.
type AsyncDispatcher struct {
	scheduler *Scheduler
	queue     chan int
	done      chan struct{}
}

func NewAsyncDispatcher(scheduler *Scheduler, queueSize int) *AsyncDispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &AsyncDispatcher{
		scheduler: scheduler,
		queue:     make(chan int, queueSize),
		done:      make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (d *AsyncDispatcher) Start() {
	go func() {
		defer close(d.done)
		for vehicleID := range d.queue {
			if err := d.scheduler.Recompute(vehicleID); err != nil {
				log.WithField("vehicle_id", vehicleID).Errorf("background recompute failed: %v", err)
			}
		}
	}()
}

// Enqueue never blocks the caller.
func (d *AsyncDispatcher) Enqueue(vehicleID int) {
	select {
	case d.queue <- vehicleID:
	default:
		log.WithField("vehicle_id", vehicleID).Warn("recompute queue full, dropping trigger")
	}
}

// Stop drains the queue and waits for the worker to exit.
func (d *AsyncDispatcher) Stop() {
	close(d.queue)
	<-d.done
}

// SyncDispatcher runs the recompute inline. Used in tests where the
// outcome must be observable immediately.
type SyncDispatcher struct {
	Scheduler *Scheduler
}

func (d *SyncDispatcher) Enqueue(vehicleID int) {
	if err := d.Scheduler.Recompute(vehicleID); err != nil {
		log.WithField("vehicle_id", vehicleID).Errorf("recompute failed: %v", err)
	}
}
