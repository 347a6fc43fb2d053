package dom

import (
	"errors"
	"testing"
)

func TestTaskManagerCoalescesQueueRequests(t *testing.T) {
	tm := NewIntersectionObserverTaskManager()

	posted := 0
	tm.SetTaskPoster(func(task func()) { posted++ })

	tm.QueueIntersectionObserverTask()
	tm.QueueIntersectionObserverTask()
	tm.QueueIntersectionObserverTask()

	if posted != 1 {
		t.Errorf("Expected 1 posted task, got %d", posted)
	}
	if !tm.HasPendingTask() {
		t.Error("Expected a pending task")
	}

	// Running the task clears the flag and re-arms queueing.
	tm.NotifyObservers()
	if tm.HasPendingTask() {
		t.Error("Expected no pending task after delivery")
	}

	tm.QueueIntersectionObserverTask()
	if posted != 2 {
		t.Errorf("Expected a second posted task after delivery, got %d", posted)
	}
}

func TestTaskManagerWithoutPosterStaysPending(t *testing.T) {
	tm := NewIntersectionObserverTaskManager()

	tm.QueueIntersectionObserverTask()
	if !tm.HasPendingTask() {
		t.Error("Expected the task to stay pending without a poster")
	}

	// A driver without an event loop pumps delivery directly.
	tm.NotifyObservers()
	if tm.HasPendingTask() {
		t.Error("Expected the pending flag to clear after a manual pump")
	}
}

func TestTaskManagerRegistration(t *testing.T) {
	doc := newTestDocument(t)
	tm := doc.IntersectionObserverTaskManager()

	first := newTestObserver(t, doc, &recordingCallback{}, IntersectionObserverInit{})
	second := newTestObserver(t, doc, &recordingCallback{}, IntersectionObserverInit{})

	if tm.ObserverCount() != 2 {
		t.Fatalf("Expected 2 observers, got %d", tm.ObserverCount())
	}

	// Registration is idempotent.
	tm.OnIntersectionObserverCreated(first)
	if tm.ObserverCount() != 2 {
		t.Errorf("Expected re-registration to be a no-op, got %d observers", tm.ObserverCount())
	}

	tm.OnIntersectionObserverDestroyed(first)
	if tm.ObserverCount() != 1 {
		t.Errorf("Expected 1 observer after removal, got %d", tm.ObserverCount())
	}

	// Removing an unknown observer is a no-op.
	tm.OnIntersectionObserverDestroyed(first)
	if tm.ObserverCount() != 1 {
		t.Errorf("Expected removal of an unknown observer to be a no-op, got %d", tm.ObserverCount())
	}

	tm.OnIntersectionObserverDestroyed(second)
	if tm.ObserverCount() != 0 {
		t.Errorf("Expected 0 observers, got %d", tm.ObserverCount())
	}
}

func TestNotifyObserversDeliversInRegistrationOrder(t *testing.T) {
	doc := newTestDocument(t)
	tm := doc.IntersectionObserverTaskManager()

	var order []string
	first := newTestObserver(t, doc, &recordingCallback{
		onInvoke: func() { order = append(order, "first") },
	}, IntersectionObserverInit{})
	second := newTestObserver(t, doc, &recordingCallback{
		onInvoke: func() { order = append(order, "second") },
	}, IntersectionObserverInit{})

	target := newTestTarget(doc, "a", &ElementGeometry{X: 0, Y: 0, Width: 10, Height: 10})
	second.Observe(target)
	first.Observe(target)

	doc.UpdateIntersectionObservations()
	tm.NotifyObservers()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected delivery in registration order [first second], got %v", order)
	}
}

func TestNotifyObserversRoutesCallbackFailures(t *testing.T) {
	doc := newTestDocument(t)
	tm := doc.IntersectionObserverTaskManager()

	var reported []error
	tm.SetUnhandledErrorHandler(func(err error) { reported = append(reported, err) })

	failure := errors.New("callback exploded")
	failing := &recordingCallback{err: failure}
	healthy := &recordingCallback{}

	failingObserver := newTestObserver(t, doc, failing, IntersectionObserverInit{})
	healthyObserver := newTestObserver(t, doc, healthy, IntersectionObserverInit{})

	failingObserver.Observe(newTestTarget(doc, "a", &ElementGeometry{X: 0, Y: 0, Width: 10, Height: 10}))
	healthyObserver.Observe(newTestTarget(doc, "b", &ElementGeometry{X: 0, Y: 20, Width: 10, Height: 10}))

	doc.UpdateIntersectionObservations()
	tm.NotifyObservers()

	if len(reported) != 1 || !errors.Is(reported[0], failure) {
		t.Errorf("Expected the callback failure to be reported once, got %v", reported)
	}
	// The failure does not block the next observer's delivery.
	if len(healthy.batches) != 1 {
		t.Errorf("Expected the healthy observer to still deliver, got %d batches", len(healthy.batches))
	}

	// No retry: a second pump delivers nothing and reports nothing new.
	tm.NotifyObservers()
	if len(reported) != 1 {
		t.Errorf("Expected no retry of the failed delivery, got %d reports", len(reported))
	}
}

func TestUpdateObservationsCoversAllObservers(t *testing.T) {
	doc := newTestDocument(t)

	first := newTestObserver(t, doc, &recordingCallback{}, IntersectionObserverInit{})
	second := newTestObserver(t, doc, &recordingCallback{}, IntersectionObserverInit{})

	a := newTestTarget(doc, "a", &ElementGeometry{X: 0, Y: 0, Width: 10, Height: 10})
	b := newTestTarget(doc, "b", &ElementGeometry{X: 0, Y: 20, Width: 10, Height: 10})
	first.Observe(a)
	second.Observe(b)

	doc.UpdateIntersectionObservations()

	if entries := first.TakeRecords(); len(entries) != 1 {
		t.Errorf("Expected 1 entry for the first observer, got %d", len(entries))
	}
	if entries := second.TakeRecords(); len(entries) != 1 {
		t.Errorf("Expected 1 entry for the second observer, got %d", len(entries))
	}
}
