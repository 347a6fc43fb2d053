package dom

import "weak"

// IntersectionObserverRegistration is the element-side half of the
// observer/target registration pair. It remembers the last reported
// threshold state so an entry is queued only when a crossing happens.
//
// The observer reference is weak: either side of the pair may vanish first,
// and stale registrations are pruned lazily the next time the element's
// registration list is traversed.
type IntersectionObserverRegistration struct {
	observer weak.Pointer[IntersectionObserver]

	// previousThresholdIndex starts at -1 so the first update always queues
	// an initial entry, per the processing model.
	previousThresholdIndex int
	previousIsIntersecting bool
}

func newIntersectionObserverRegistration(observer *IntersectionObserver) *IntersectionObserverRegistration {
	return &IntersectionObserverRegistration{
		observer:               weak.Make(observer),
		previousThresholdIndex: -1,
	}
}

// Update runs the "update intersection observations" subtasks for one
// target/observer pair: compute the intersection of the target's border box
// with the observer's root intersection rectangle, derive the ratio and
// threshold index, and queue an entry if the crossing state changed.
// https://www.w3.org/TR/intersection-observer/#update-intersection-observations-algo
func (r *IntersectionObserverRegistration) Update(target *Element) {
	observer := r.observer.Value()
	if observer == nil {
		return
	}

	rootBounds := observer.rootIntersectionRect()
	targetRect := target.BoundingClientRect()

	intersectionRect := targetRect.Intersection(rootBounds)
	isIntersecting := intersectionRect != nil
	if intersectionRect == nil {
		intersectionRect = NewDOMRect(0, 0, 0, 0)
	}

	var intersectionRatio float64
	if targetArea := targetRect.Area(); targetArea > 0 {
		intersectionRatio = intersectionRect.Area() / targetArea
	} else if isIntersecting {
		// A zero-area target that touches the root is fully visible.
		intersectionRatio = 1
	}

	thresholdIndex := observer.thresholdIndexForRatio(intersectionRatio)
	if thresholdIndex == r.previousThresholdIndex && isIntersecting == r.previousIsIntersecting {
		return
	}

	observer.QueueIntersectionObserverEntry(NewIntersectionObserverEntry(
		rootBounds, targetRect, intersectionRect,
		isIntersecting, intersectionRatio, target))
	r.previousThresholdIndex = thresholdIndex
	r.previousIsIntersecting = isIntersecting
}

// RegisterIntersectionObserverTarget records that the observer now tracks
// this element. Registering an already-registered observer is a no-op and
// does not reset the registration's previous threshold state.
func (e *Element) RegisterIntersectionObserverTarget(observer *IntersectionObserver) {
	if observer == nil {
		panic("dom: RegisterIntersectionObserverTarget called with nil observer")
	}
	live := e.elementData.intersectionObserverRegistrations[:0]
	found := false
	for _, reg := range e.elementData.intersectionObserverRegistrations {
		existing := reg.observer.Value()
		if existing == nil {
			continue
		}
		if existing == observer {
			found = true
		}
		live = append(live, reg)
	}
	if !found {
		live = append(live, newIntersectionObserverRegistration(observer))
	}
	e.elementData.intersectionObserverRegistrations = live
}

// UnregisterIntersectionObserverTarget removes the observer's registration
// from this element, if present.
func (e *Element) UnregisterIntersectionObserverTarget(observer *IntersectionObserver) {
	if observer == nil {
		panic("dom: UnregisterIntersectionObserverTarget called with nil observer")
	}
	live := e.elementData.intersectionObserverRegistrations[:0]
	for _, reg := range e.elementData.intersectionObserverRegistrations {
		existing := reg.observer.Value()
		if existing == nil || existing == observer {
			continue
		}
		live = append(live, reg)
	}
	e.elementData.intersectionObserverRegistrations = live
}

// UpdateIntersectionObservationsForTarget recomputes this element's
// intersection state for the given observer, queueing an entry on a
// threshold crossing.
func (e *Element) UpdateIntersectionObservationsForTarget(observer *IntersectionObserver) {
	for _, reg := range e.elementData.intersectionObserverRegistrations {
		if reg.observer.Value() == observer {
			reg.Update(e)
			return
		}
	}
}

// IsIntersectionObserverTarget reports whether any observer currently has a
// live registration on this element.
func (e *Element) IsIntersectionObserverTarget() bool {
	for _, reg := range e.elementData.intersectionObserverRegistrations {
		if reg.observer.Value() != nil {
			return true
		}
	}
	return false
}
