package js

import "sync"

// task represents a queued unit of work in the event loop.
type task struct {
	run func()
}

// eventLoop manages the JavaScript event loop for microtasks and macrotasks.
// Intersection observer notification tasks are queued here as macrotasks by
// the document's task manager.
type eventLoop struct {
	microtasks []task
	macrotasks []task
	mu         sync.Mutex
}

// newEventLoop creates a new event loop.
func newEventLoop() *eventLoop {
	return &eventLoop{
		microtasks: make([]task, 0),
		macrotasks: make([]task, 0),
	}
}

// queueMicrotask adds a microtask to the queue.
// Microtasks are executed before the next macrotask.
func (el *eventLoop) queueMicrotask(run func()) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.microtasks = append(el.microtasks, task{run: run})
}

// queueMacrotask adds a macrotask to the queue.
// Macrotasks are executed after all microtasks are complete.
func (el *eventLoop) queueMacrotask(run func()) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.macrotasks = append(el.macrotasks, task{run: run})
}

// runOnce processes one iteration of the event loop.
// It drains all microtasks, then executes one macrotask.
// Returns true if there are more events to process.
func (el *eventLoop) runOnce() bool {
	// First, drain all microtasks
	for {
		el.mu.Lock()
		if len(el.microtasks) == 0 {
			el.mu.Unlock()
			break
		}
		t := el.microtasks[0]
		el.microtasks = el.microtasks[1:]
		el.mu.Unlock()

		t.run()
	}

	// Then execute one macrotask if available
	el.mu.Lock()
	if len(el.macrotasks) > 0 {
		t := el.macrotasks[0]
		el.macrotasks = el.macrotasks[1:]
		el.mu.Unlock()

		t.run()
		return true
	}
	el.mu.Unlock()

	return el.hasPending()
}

// hasPending returns true if there are any pending tasks.
func (el *eventLoop) hasPending() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.microtasks) > 0 || len(el.macrotasks) > 0
}
