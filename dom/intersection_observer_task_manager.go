package dom

// IntersectionObserverTaskManager is the document-scoped scheduler that
// intersection observers register with. It owns the decision of when queued
// entries are delivered: observers signal pending work through
// QueueIntersectionObserverTask, signals coalesce into a single task, and the
// task calls Notify on every registered observer.
//
// Like the observers it manages, the task manager lives on the document's
// scripting context; it is not safe for concurrent use.
type IntersectionObserverTaskManager struct {
	// Registered observers, in creation order.
	observers []*IntersectionObserver

	// True while a notification task is queued but not yet run.
	taskQueued bool

	// postTask hands a notification task to the owning event loop. When nil,
	// the task stays pending until NotifyObservers is called directly, which
	// lets a driver without an event loop pump deliveries itself.
	postTask func(task func())

	// onUnhandledError surfaces callback failures reported by Notify.
	onUnhandledError func(err error)
}

// NewIntersectionObserverTaskManager creates an empty task manager.
func NewIntersectionObserverTaskManager() *IntersectionObserverTaskManager {
	return &IntersectionObserverTaskManager{}
}

// SetTaskPoster installs the hook that schedules a queued notification task
// onto the owning event loop.
func (tm *IntersectionObserverTaskManager) SetTaskPoster(post func(task func())) {
	tm.postTask = post
}

// SetUnhandledErrorHandler installs the handler that receives unhandled
// callback failures. The manager reports each failure once and never
// retries the delivery.
func (tm *IntersectionObserverTaskManager) SetUnhandledErrorHandler(handler func(err error)) {
	tm.onUnhandledError = handler
}

// OnIntersectionObserverCreated registers a newly constructed observer.
func (tm *IntersectionObserverTaskManager) OnIntersectionObserverCreated(observer *IntersectionObserver) {
	for _, existing := range tm.observers {
		if existing == observer {
			return
		}
	}
	tm.observers = append(tm.observers, observer)
}

// OnIntersectionObserverDestroyed removes an observer that is being torn
// down.
func (tm *IntersectionObserverTaskManager) OnIntersectionObserverDestroyed(observer *IntersectionObserver) {
	for i, existing := range tm.observers {
		if existing == observer {
			tm.observers = append(tm.observers[:i], tm.observers[i+1:]...)
			return
		}
	}
}

// QueueIntersectionObserverTask requests a notification task. Requests made
// while a task is already queued coalesce into that task.
func (tm *IntersectionObserverTaskManager) QueueIntersectionObserverTask() {
	if tm.taskQueued {
		return
	}
	tm.taskQueued = true
	if tm.postTask != nil {
		tm.postTask(tm.NotifyObservers)
	}
}

// HasPendingTask reports whether a notification task is queued and has not
// run yet.
func (tm *IntersectionObserverTaskManager) HasPendingTask() bool {
	return tm.taskQueued
}

// NotifyObservers runs the notification task: every registered observer
// delivers its queued entries, in registration order. Callback failures go
// to the unhandled-error handler; a failed delivery is never retried.
// https://www.w3.org/TR/intersection-observer/#notify-intersection-observers-algo
func (tm *IntersectionObserverTaskManager) NotifyObservers() {
	tm.taskQueued = false
	for _, observer := range tm.observers {
		if err := observer.Notify(); err != nil {
			if tm.onUnhandledError != nil {
				tm.onUnhandledError(err)
			}
		}
	}
}

// UpdateObservations runs the per-pass intersection update for every
// registered observer. The layout driver calls this once layout geometry is
// final for the pass.
func (tm *IntersectionObserverTaskManager) UpdateObservations() {
	for _, observer := range tm.observers {
		observer.UpdateObservationTargets()
	}
}

// ObserverCount returns the number of registered observers.
func (tm *IntersectionObserverTaskManager) ObserverCount() int {
	return len(tm.observers)
}
